package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultModel            = "gemini-3-flash-preview"
	DefaultImageModel       = "gemini-2.5-flash-image"
	DefaultPageDelay        = 10 * time.Second
	DefaultImageMaxAttempts = 3
	DefaultImageRetryBase   = 2 * time.Second
	DefaultImageRate        = 2 * time.Second // 全セッション共通の画像リクエスト間隔なのだ
	DefaultServerAddr       = ":8080"
	DefaultSessionTTL       = 2 * time.Hour
	DefaultOutputDir        = "output"
	DefaultLanguage         = "English"
)

// Config はアプリケーション全体の環境設定（APIキーや生成の流量設定）を保持する構造体なのだ。
type Config struct {
	GeminiAPIKey     string
	GeminiModel      string
	GeminiImageModel string

	PageDelay        time.Duration
	ImageMaxAttempts int
	ImageRetryBase   time.Duration
	ImageRate        time.Duration

	ServerAddr string
	SessionTTL time.Duration
	OutputDir  string

	Options GenerateOptions
}

// LoadConfig は .env と環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn(".env の読み込みに失敗したのだ", "error", err)
	}

	cfg := &Config{
		GeminiAPIKey:     envutil.GetEnv("GEMINI_API_KEY", ""),
		GeminiModel:      envutil.GetEnv("GEMINI_MODEL", DefaultModel),
		GeminiImageModel: envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
		PageDelay:        durationEnv("PAGE_DELAY", DefaultPageDelay),
		ImageMaxAttempts: intEnv("IMAGE_MAX_ATTEMPTS", DefaultImageMaxAttempts),
		ImageRetryBase:   durationEnv("IMAGE_RETRY_BASE_DELAY", DefaultImageRetryBase),
		ImageRate:        durationEnv("IMAGE_RATE_INTERVAL", DefaultImageRate),
		ServerAddr:       envutil.GetEnv("SERVER_ADDR", DefaultServerAddr),
		SessionTTL:       durationEnv("SESSION_TTL", DefaultSessionTTL),
		OutputDir:        envutil.GetEnv("OUTPUT_DIR", DefaultOutputDir),
	}
	cfg.Options = GenerateOptions{
		AIModel:    cfg.GeminiModel,
		ImageModel: cfg.GeminiImageModel,
		OutputDir:  cfg.OutputDir,
		PageDelay:  cfg.PageDelay,
		Language:   DefaultLanguage,
	}
	return cfg
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	// 物語の入力
	Topic    string // --topic
	Language string // --language
	Hero     HeroOptions

	// 入出力
	StoryFile     string   // --story-file: export で読む story.json
	OutputDir     string   // --output-dir
	Formats       []string // --format
	ExtractImages bool     // --extract-images

	// AI挙動設定
	AIModel    string // --model: テキスト生成用のGeminiモデル
	ImageModel string // --image-model: 画像生成用のGeminiモデル
	Mock       bool   // --mock: APIを呼ばずに MockGenerator を使うのだ

	// 実行制御
	PageDelay time.Duration // --page-delay
}

// HeroOptions は主人公のパーソナライズ指定なのだ。
type HeroOptions struct {
	Name     string
	Gender   string
	Hair     string
	Eyes     string
	Clothing string
}

func durationEnv(key string, def time.Duration) time.Duration {
	raw := envutil.GetEnv(key, "")
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		slog.Warn("不正な期間指定なのでデフォルト値を使うのだ", "key", key, "value", raw, "default", def)
		return def
	}
	return d
}

func intEnv(key string, def int) int {
	raw := envutil.GetEnv(key, "")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		slog.Warn("不正な数値指定なのでデフォルト値を使うのだ", "key", key, "value", raw, "default", def)
		return def
	}
	return n
}
