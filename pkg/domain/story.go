package domain

// TextPosition はページ本文をイラストのどちら側に重ねるかを表します。
type TextPosition string

const (
	TextTop    TextPosition = "top"
	TextBottom TextPosition = "bottom"
)

// StoryDocument は AI モデルが生成する絵本全体の構造です。
type StoryDocument struct {
	Title            string      `json:"title" validate:"required"`
	CoverImagePrompt string      `json:"coverImagePrompt"`
	CoverImageURL    string      `json:"coverImageUrl,omitempty"`
	Pages            []StoryPage `json:"pages" validate:"required,min=1,dive"`
}

// StoryPage は絵本の1ページ分の本文、挿絵プロンプト、挿絵を保持します。
type StoryPage struct {
	PageNumber   int          `json:"pageNumber" validate:"gte=1"`
	Content      string       `json:"content"`
	ImagePrompt  string       `json:"imagePrompt"`
	ImageURL     string       `json:"imageUrl,omitempty"`
	TextPosition TextPosition `json:"textPosition" validate:"oneof=top bottom"`
}

// GenerationStatus は生成処理のライフサイクルを表します。
type GenerationStatus string

const (
	StatusIdle         GenerationStatus = "idle"
	StatusWriting      GenerationStatus = "writing"
	StatusIllustrating GenerationStatus = "illustrating"
	StatusReady        GenerationStatus = "ready"
	StatusError        GenerationStatus = "error"
)

// Running は生成処理が進行中かどうかを返します。
func (s GenerationStatus) Running() bool {
	return s == StatusWriting || s == StatusIllustrating
}
