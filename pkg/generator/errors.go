package generator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// Kind はリモート呼び出しの失敗をリトライ方針ごとに分類したものです。
type Kind int

const (
	// KindTransient は待機してから再試行してよい失敗です。
	KindTransient Kind = iota
	// KindRateLimited はクォータ超過です。ローカルでは再試行せず即座に呼び出し元へ返します。
	KindRateLimited
	// KindFatal は再試行しても意味のない失敗です（キャンセル、不正な入力など）。
	KindFatal
)

func (k Kind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindRateLimited:
		return "rate_limited"
	case KindFatal:
		return "fatal"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Op は失敗した操作です。
type Op string

const (
	OpStory        Op = "generate story"
	OpIllustration Op = "generate illustration"
)

var (
	// ErrGeneration は物語テキストの生成失敗を表します。
	ErrGeneration = errors.New("story generation failed")
	// ErrImageGeneration は挿絵の生成失敗を表します。
	ErrImageGeneration = errors.New("image generation failed")
	// ErrRateLimited はクォータ超過による失敗を表します。ErrImageGeneration の一種として扱われます。
	ErrRateLimited = errors.New("rate limited")

	errEmptyResponse = errors.New("empty response")
	errNoImage       = errors.New("response contained no image data")
)

const rateLimitStatus = "RESOURCE_EXHAUSTED"

// Error は分類済みのリモート呼び出しエラーです。
type Error struct {
	Kind     Kind
	Op       Op
	Attempts int
	Err      error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindRateLimited:
		return fmt.Sprintf("%s: %s: %v", e.Op, ErrRateLimited, e.Err)
	case e.Attempts > 1:
		return fmt.Sprintf("%s: failed after %d attempts: %v", e.Op, e.Attempts, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is は操作と分類に応じて sentinel エラーと一致させます。
func (e *Error) Is(target error) bool {
	switch target {
	case ErrGeneration:
		return e.Op == OpStory
	case ErrImageGeneration:
		return e.Op == OpIllustration
	case ErrRateLimited:
		return e.Kind == KindRateLimited
	}
	return false
}

// Classify はエラーをリトライ方針の分類に写します。
func Classify(err error) Kind {
	if err == nil {
		return KindTransient
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindFatal
	}
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	if errors.Is(err, ErrRateLimited) {
		return KindRateLimited
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		switch v := any(e).(type) {
		case genai.APIError:
			return classifyAPIError(v)
		case *genai.APIError:
			return classifyAPIError(*v)
		}
	}
	msg := err.Error()
	if strings.Contains(msg, "429") || strings.Contains(msg, rateLimitStatus) {
		return KindRateLimited
	}
	return KindTransient
}

func classifyAPIError(e genai.APIError) Kind {
	if e.Code == http.StatusTooManyRequests || e.Status == rateLimitStatus {
		return KindRateLimited
	}
	return KindTransient
}
