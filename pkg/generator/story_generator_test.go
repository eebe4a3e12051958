package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/shouni/go-pixetale/pkg/domain"
	"github.com/shouni/go-pixetale/pkg/prompts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

const storyJSON = `{
  "title": "Sir Whiskers",
  "coverImagePrompt": "a cat knight",
  "pages": [
    {"pageNumber": 1, "content": "A cat dreamed.", "imagePrompt": "cat on hill", "textPosition": "bottom"},
    {"pageNumber": 2, "content": "It trained hard.", "imagePrompt": "cat with sword", "textPosition": "top"}
  ]
}`

func newStoryGenerator(t *testing.T, fake *fakeContentGenerator) *GeminiStoryGenerator {
	t.Helper()
	pb, err := prompts.NewTextPromptBuilder()
	require.NoError(t, err)
	return NewGeminiStoryGenerator(fake, pb, "")
}

func TestGeminiStoryGenerator_GenerateStory(t *testing.T) {
	t.Run("スキーマ付きで1回だけ呼び出すこと", func(t *testing.T) {
		fake := &fakeContentGenerator{responses: []fakeResponse{{resp: textResponse(storyJSON)}}}
		g := newStoryGenerator(t, fake)

		doc, err := g.GenerateStory(context.Background(), "A cat who wanted to be a knight", domain.LanguageEnglish, nil)
		require.NoError(t, err)

		assert.Equal(t, "Sir Whiskers", doc.Title)
		require.Len(t, doc.Pages, 2)
		assert.Equal(t, domain.TextTop, doc.Pages[1].TextPosition)
		assert.Empty(t, doc.CoverImageURL)

		require.Len(t, fake.calls, 1)
		call := fake.calls[0]
		assert.Equal(t, DefaultTextModel, call.model)
		assert.Contains(t, call.prompt, "A cat who wanted to be a knight")
		assert.Equal(t, "application/json", call.config.ResponseMIMEType)
		require.NotNil(t, call.config.ResponseSchema)
		assert.ElementsMatch(t, []string{"title", "coverImagePrompt", "pages"}, call.config.ResponseSchema.Required)
	})

	t.Run("コードブロックで囲まれた JSON も読めること", func(t *testing.T) {
		fake := &fakeContentGenerator{responses: []fakeResponse{{resp: textResponse("```json\n" + storyJSON + "\n```")}}}
		doc, err := newStoryGenerator(t, fake).GenerateStory(context.Background(), "cats", domain.LanguageEnglish, nil)
		require.NoError(t, err)
		assert.Equal(t, "Sir Whiskers", doc.Title)
	})

	t.Run("ページ番号は並び順で振り直すこと", func(t *testing.T) {
		raw := `{"title":"T","coverImagePrompt":"c","pages":[{"pageNumber":7,"content":"a","imagePrompt":"b","textPosition":"top"}]}`
		fake := &fakeContentGenerator{responses: []fakeResponse{{resp: textResponse(raw)}}}
		doc, err := newStoryGenerator(t, fake).GenerateStory(context.Background(), "cats", domain.LanguageEnglish, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, doc.Pages[0].PageNumber)
	})

	failures := []struct {
		name string
		resp fakeResponse
	}{
		{name: "API エラー", resp: fakeResponse{err: errors.New("boom")}},
		{name: "空の応答", resp: fakeResponse{resp: textResponse("   ")}},
		{name: "候補なし", resp: fakeResponse{resp: &genai.GenerateContentResponse{}}},
		{name: "JSON ではない", resp: fakeResponse{resp: textResponse("once upon a time")}},
		{name: "構造が不正", resp: fakeResponse{resp: textResponse(`{"title":"","pages":[]}`)}},
	}
	for _, tt := range failures {
		t.Run("失敗: "+tt.name, func(t *testing.T) {
			fake := &fakeContentGenerator{responses: []fakeResponse{tt.resp}}
			doc, err := newStoryGenerator(t, fake).GenerateStory(context.Background(), "cats", domain.LanguageEnglish, nil)
			assert.Nil(t, doc)
			assert.ErrorIs(t, err, ErrGeneration)
			assert.NotErrorIs(t, err, ErrImageGeneration)
			assert.Len(t, fake.calls, 1, "この層では再試行しない")
		})
	}
}
