package prompts

import (
	"fmt"
	"strings"

	"github.com/shouni/gemini-image-kit/ports"
)

const (
	// IllustrationAspectRatio は挿絵と表紙に共通の縦長アスペクト比です。
	IllustrationAspectRatio = "3:4"

	// PixelArtStylePreamble は全ての挿絵プロンプトの先頭に付ける画風指定です。
	PixelArtStylePreamble = "16-bit pixel art style, retro rpg aesthetic, vibrant colors, detailed, high resolution, masterpiece, fantasy adventure style."
	// NoTextSuffix は文字や UI を描かせないための末尾指定です。
	NoTextSuffix = "IMPORTANT: NO text, NO speech bubbles, NO words, NO interface, NO hud, pure illustration."

	// NegativeIllustrationPrompt は生成時に避けたい要素です。
	NegativeIllustrationPrompt = "text, letters, words, speech bubbles, captions, watermark, signature, user interface, hud"
)

// PixelArtPromptBuilder はシーン記述をピクセルアート用のリクエストに包みます。
type PixelArtPromptBuilder struct {
	preamble string
	suffix   string
}

// NewPixelArtPromptBuilder は既定の画風で PixelArtPromptBuilder を生成します。
func NewPixelArtPromptBuilder() *PixelArtPromptBuilder {
	return &PixelArtPromptBuilder{
		preamble: PixelArtStylePreamble,
		suffix:   NoTextSuffix,
	}
}

// BuildPrompt はシーン記述の前後に画風指定と禁止事項を付けたプロンプトを返します。
func (b *PixelArtPromptBuilder) BuildPrompt(scene string) string {
	return fmt.Sprintf("%s\nScene description: %s.\n%s", b.preamble, strings.TrimSpace(scene), b.suffix)
}

// BuildRequest は画像生成リクエストを組み立てます。
func (b *PixelArtPromptBuilder) BuildRequest(scene string) ports.GenerationOptions {
	return ports.GenerationOptions{
		Prompt:         b.BuildPrompt(scene),
		NegativePrompt: NegativeIllustrationPrompt,
		AspectRatio:    IllustrationAspectRatio,
	}
}
