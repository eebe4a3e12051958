package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/shouni/go-pixetale/pkg/domain"
	"github.com/shouni/go-pixetale/pkg/pipeline"
)

var (
	// ErrEmptyTopic はトピックが空または空白だけのときに Start が返します。状態は変わりません。
	ErrEmptyTopic = errors.New("topic is empty")
	// ErrBusy は生成中に Start が呼ばれたときに返します。
	ErrBusy = errors.New("a quest is already running")
)

// QuestRunner は Controller が呼び出すオーケストレーターの契約です。
type QuestRunner interface {
	Run(ctx context.Context, req pipeline.QuestRequest, onProgress pipeline.ProgressFunc) (*domain.StoryDocument, error)
}

// Snapshot はある時点の状態のコピーです。
type Snapshot struct {
	Status   domain.GenerationStatus `json:"status"`
	Progress int                     `json:"progress"`
	Story    *domain.StoryDocument   `json:"story"`
	Error    string                  `json:"error,omitempty"`
	Topic    string                  `json:"topic"`
	Language domain.Language         `json:"language,omitempty"`
}

// Controller は生成状態を保持し、Start と Restart だけで更新します。
// 進行中の実行から届く通知は、その実行が最新のものである間だけ反映されます。
type Controller struct {
	runner QuestRunner

	mu       sync.RWMutex
	runID    uint64
	status   domain.GenerationStatus
	progress int
	story    *domain.StoryDocument
	errMsg   string
	topic    string
	language domain.Language
	lastDone <-chan struct{} // 直前に開始した実行の完了通知
}

// NewController は idle 状態の Controller を生成します。
func NewController(runner QuestRunner) *Controller {
	return &Controller{
		runner: runner,
		status: domain.StatusIdle,
	}
}

// Run は Start で始めた1回の実行のハンドルです。
type Run struct {
	done chan struct{}
	doc  *domain.StoryDocument
	err  error
}

// Done は実行が終わると閉じられます。
func (r *Run) Done() <-chan struct{} { return r.done }

// Wait は実行の終了を待ち、完成したドキュメントまたは致命的なエラーを返します。
func (r *Run) Wait() (*domain.StoryDocument, error) {
	<-r.done
	return r.doc, r.err
}

// Start は絵本の生成を開始します。
// トピックが空なら ErrEmptyTopic、実行中なら ErrBusy を返し、状態は変更しません。
// 受け付けた場合はエラーを消して writing / 10% に遷移し、実行をバックグラウンドで進めます。
// 実行は ctx のキャンセルを引き継ぎません。Restart 前の実行がまだ残っていれば、
// その完了を待ってから始めるため、画像リクエストが並行することはありません。
func (c *Controller) Start(ctx context.Context, topic string, lang domain.Language, hero *domain.HeroTraits) (*Run, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, ErrEmptyTopic
	}

	run := &Run{done: make(chan struct{})}

	c.mu.Lock()
	if c.status.Running() {
		c.mu.Unlock()
		return nil, ErrBusy
	}
	c.runID++
	id := c.runID
	c.status = domain.StatusWriting
	c.progress = 10
	c.story = nil
	c.errMsg = ""
	c.topic = topic
	c.language = lang
	prev := c.lastDone
	c.lastDone = run.done
	c.mu.Unlock()

	slog.InfoContext(ctx, "クエストを開始します", "topic", topic, "language", lang, "run", id)

	req := pipeline.QuestRequest{Topic: strings.TrimSpace(topic), Language: lang, Hero: hero}
	runCtx := context.WithoutCancel(ctx)

	go func() {
		defer close(run.done)
		// Restart で見捨てられた実行がまだ動いていれば、終わるまでリクエストを出さない
		if prev != nil {
			<-prev
		}
		run.doc, run.err = c.runner.Run(runCtx, req, func(u pipeline.Update) {
			c.apply(id, u)
		})
		if run.err != nil {
			c.fail(id, run.err)
		}
	}()
	return run, nil
}

// Restart は状態を初期値に戻します。何度呼んでも結果は同じです。
// 実行中の処理は止めませんが、以降その通知は無視されます。
func (c *Controller) Restart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.runID++
	c.status = domain.StatusIdle
	c.progress = 0
	c.story = nil
	c.errMsg = ""
	c.topic = ""
}

// Snapshot は現在の状態のコピーを返します。
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{
		Status:   c.status,
		Progress: c.progress,
		Story:    c.story.Clone(),
		Error:    c.errMsg,
		Topic:    c.topic,
		Language: c.language,
	}
}

// apply は最新の実行からの通知だけを状態に反映します。
func (c *Controller) apply(id uint64, u pipeline.Update) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id != c.runID {
		return
	}
	c.status = u.Status
	if u.Progress > c.progress {
		c.progress = u.Progress
	}
	c.story = u.Story
}

func (c *Controller) fail(id uint64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id != c.runID {
		return
	}
	c.status = domain.StatusError
	c.errMsg = UserMessage(err)
	slog.Error("クエストが失敗しました", "run", id, "error", err)
}

// UserMessage は致命的なエラーから利用者向けのメッセージを作ります。
func UserMessage(err error) string {
	cause := err
	var qe *pipeline.QuestError
	if errors.As(err, &qe) && qe.Err != nil {
		cause = qe.Err
	}
	return fmt.Sprintf("The quest failed: %v", cause)
}
