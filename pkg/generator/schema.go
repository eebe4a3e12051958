package generator

import "google.golang.org/genai"

// storySchema は物語生成の構造化出力スキーマです。
func storySchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title": {Type: genai.TypeString},
			"coverImagePrompt": {
				Type:        genai.TypeString,
				Description: "Iconic visual description for the book cover.",
			},
			"pages": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"pageNumber": {Type: genai.TypeInteger},
						"content":    {Type: genai.TypeString},
						"imagePrompt": {
							Type:        genai.TypeString,
							Description: "Visual description enforcing negative space for text.",
						},
						"textPosition": {
							Type:        genai.TypeString,
							Enum:        []string{"top", "bottom"},
							Description: "Position of text. MUST match the negative space in the image.",
						},
					},
					Required: []string{"pageNumber", "content", "imagePrompt", "textPosition"},
				},
			},
		},
		Required: []string{"title", "coverImagePrompt", "pages"},
	}
}
