package generator

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/shouni/go-pixetale/pkg/domain"

	"google.golang.org/genai"
)

var jsonFence = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// parseStory はモデルが返したテキストを StoryDocument に変換します。
// スキーマ指定が効かずにコードブロックで囲まれて返ってきた場合も取り出します。
func parseStory(raw string) (*domain.StoryDocument, error) {
	rawJSON := strings.TrimSpace(raw)
	if m := jsonFence.FindStringSubmatch(rawJSON); m != nil {
		rawJSON = m[1]
	}
	if rawJSON == "" {
		return nil, errEmptyResponse
	}

	var doc domain.StoryDocument
	if err := json.Unmarshal([]byte(rawJSON), &doc); err != nil {
		return nil, fmt.Errorf("JSONのパースに失敗しました: %w", err)
	}
	// 画像はこの後のステップで埋めるので、モデルが何か返してきても捨てる
	doc.CoverImageURL = ""
	for i := range doc.Pages {
		doc.Pages[i].ImageURL = ""
	}
	doc.Normalize()

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// responseText は最初の候補のテキストパートを連結して返します。
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}

// firstInlineImage は最初の候補から最初のインライン画像を探します。
func firstInlineImage(resp *genai.GenerateContentResponse) (*genai.Blob, bool) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, false
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData, true
		}
	}
	return nil, false
}
