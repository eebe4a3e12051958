package pipeline

import (
	"context"
	"time"
)

// DefaultPageDelay は画像リクエストの間に挟む固定の待機時間です。
const DefaultPageDelay = 10 * time.Second

// Pacer は画像リクエストの間隔を空けます。
type Pacer interface {
	Pause(ctx context.Context) error
}

// FixedPacer は毎回同じ時間だけ待機します。Delay が0以下なら待ちません。
type FixedPacer struct {
	Delay time.Duration
}

// Pause は Delay だけ待機します。ctx が先に終わればそのエラーを返します。
func (p FixedPacer) Pause(ctx context.Context) error {
	if p.Delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(p.Delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
