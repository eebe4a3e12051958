package prompts

import "github.com/shouni/gemini-image-kit/ports"

// StoryPromptBuilder は物語生成用のプロンプトを構築する契約です。
type StoryPromptBuilder interface {
	Build(data StoryTemplateData) (string, error)
}

// IllustrationPromptBuilder は挿絵1枚分の画像生成リクエストを構築する契約です。
type IllustrationPromptBuilder interface {
	BuildRequest(scene string) ports.GenerationOptions
}
