package generator

import "time"

const (
	// DefaultTextModel は物語の生成に使うモデルです。
	DefaultTextModel = "gemini-3-flash-preview"
	// DefaultImageModel は挿絵の生成に使うモデルです。
	DefaultImageModel = "gemini-2.5-flash-image"

	// DefaultMaxAttempts は挿絵1枚あたりの最大試行回数です。
	DefaultMaxAttempts = 3
	// DefaultRetryBaseDelay は再試行前の待機時間の単位です。n 回目の失敗後は n 倍待ちます。
	DefaultRetryBaseDelay = 2 * time.Second

	// DefaultStoryTemperature は物語生成時の温度です。
	DefaultStoryTemperature = float32(0.9)

	jsonMIMEType         = "application/json"
	defaultImageMIMEType = "image/png"
)
