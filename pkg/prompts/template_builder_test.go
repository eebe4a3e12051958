package prompts

import (
	"strings"
	"testing"

	"github.com/shouni/gemini-image-kit/ports"
	"github.com/shouni/go-pixetale/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextPromptBuilder_Build(t *testing.T) {
	b, err := NewTextPromptBuilder()
	require.NoError(t, err)

	t.Run("英語・パーソナライズなし", func(t *testing.T) {
		data := NewStoryTemplateData("A cat who wanted to be a knight", domain.LanguageEnglish, nil)
		got, err := b.Build(data)
		require.NoError(t, err)

		assert.Contains(t, got, `about: "A cat who wanted to be a knight"`)
		assert.Contains(t, got, "10-page")
		assert.Contains(t, got, "Language: English.")
		assert.Contains(t, got, "The main protagonist is determined by the story topic.")
		assert.NotContains(t, got, "PERSONALIZATION")
		assert.Contains(t, got, BottomLayoutInstruction)
		assert.Contains(t, got, TopLayoutInstruction)
	})

	t.Run("バイリンガルは空行区切りを指示すること", func(t *testing.T) {
		data := NewStoryTemplateData("dragons", domain.LanguageBilingual, nil)
		got, err := b.Build(data)
		require.NoError(t, err)

		assert.Contains(t, got, "Write every page in BOTH English and Spanish.")
		assert.Contains(t, got, "[English Paragraph]\n\n[Spanish Paragraph]")
		assert.NotContains(t, got, "Language: Bilingual (English & Spanish).")
	})

	t.Run("主人公の外見が全挿絵に固定されること", func(t *testing.T) {
		hero := &domain.HeroTraits{Name: "Luna", Gender: domain.GenderGirl, Hair: "silver", Eyes: "green", Clothing: "a starry cloak"}
		data := NewStoryTemplateData("the moon", domain.LanguageSpanish, hero)
		got, err := b.Build(data)
		require.NoError(t, err)

		assert.Contains(t, got, "Language: Spanish.")
		assert.Contains(t, got, "MUST be a Girl named Luna, with silver hair, with green eyes, wearing a starry cloak.")
		assert.Contains(t, got, `Use the name "Luna" in the text.`)
		assert.Contains(t, got, `exactly like this: "A Girl with silver hair and a starry cloak"`)
	})

	t.Run("名前がなければ Hero を使うこと", func(t *testing.T) {
		data := NewStoryTemplateData("robots", domain.LanguageEnglish, &domain.HeroTraits{Eyes: "blue"})
		got, err := b.Build(data)
		require.NoError(t, err)

		assert.Contains(t, got, "MUST be a child, with blue eyes.")
		assert.Contains(t, got, `Use the name "Hero" in the text.`)
	})

	t.Run("トピックが空ならエラー", func(t *testing.T) {
		_, err := b.Build(NewStoryTemplateData("   ", domain.LanguageEnglish, nil))
		assert.Error(t, err)
	})
}

func TestNewTextPromptBuilder_EmptyTemplate(t *testing.T) {
	_, err := newTextPromptBuilder("  ")
	assert.Error(t, err)
}

func TestPixelArtPromptBuilder_BuildRequest(t *testing.T) {
	b := NewPixelArtPromptBuilder()
	var req ports.GenerationOptions = b.BuildRequest("  a castle at dusk  ")

	assert.True(t, strings.HasPrefix(req.Prompt, PixelArtStylePreamble))
	assert.Contains(t, req.Prompt, "Scene description: a castle at dusk.")
	assert.True(t, strings.HasSuffix(req.Prompt, NoTextSuffix))
	assert.Equal(t, "3:4", req.AspectRatio)
	assert.Equal(t, NegativeIllustrationPrompt, req.NegativePrompt)
}
