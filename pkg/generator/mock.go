package generator

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"sync"

	"github.com/shouni/go-pixetale/pkg/asset"
	"github.com/shouni/go-pixetale/pkg/domain"
	"github.com/shouni/go-pixetale/pkg/prompts"
)

// mockRecordLimit は MockGenerator が覚えておくシーン記述の上限です。
const mockRecordLimit = 64

// MockGenerator は API キーなしで動作するオフラインの生成器です。
// 物語は決まった形の10ページ、挿絵はシーンごとに色の違う小さな PNG を返します。
type MockGenerator struct {
	// PageCount は生成するページ数です。0 なら prompts.DefaultPageCount。
	PageCount int
	// StoryErr が設定されていれば GenerateStory はそれを返します。
	StoryErr error
	// IllustrationErr はシーン記述を受け取り、失敗させたい場合にエラーを返します。
	IllustrationErr func(scene string) error

	mu          sync.Mutex
	storyCalls  int
	illustrated []string
}

// NewMockGenerator は MockGenerator を生成します。
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// GenerateStory はトピックを埋め込んだ定型の物語を返します。
func (m *MockGenerator) GenerateStory(ctx context.Context, topic string, lang domain.Language, hero *domain.HeroTraits) (*domain.StoryDocument, error) {
	m.mu.Lock()
	m.storyCalls++
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, &Error{Kind: KindFatal, Op: OpStory, Attempts: 1, Err: err}
	}
	if m.StoryErr != nil {
		return nil, &Error{Kind: Classify(m.StoryErr), Op: OpStory, Attempts: 1, Err: m.StoryErr}
	}

	n := m.PageCount
	if n <= 0 {
		n = prompts.DefaultPageCount
	}
	anchor := hero.VisualAnchor()
	if anchor == "" {
		anchor = "A brave little adventurer"
	}
	name := hero.DisplayName()

	doc := &domain.StoryDocument{
		Title:            fmt.Sprintf("The Quest of %s", strings.TrimSpace(topic)),
		CoverImagePrompt: fmt.Sprintf("%s, iconic heroic pose, centered, %s", anchor, topic),
		Pages:            make([]domain.StoryPage, n),
	}
	for i := range doc.Pages {
		pos := domain.TextBottom
		layout := prompts.BottomLayoutInstruction
		if i%2 == 1 {
			pos = domain.TextTop
			layout = prompts.TopLayoutInstruction
		}
		doc.Pages[i] = domain.StoryPage{
			PageNumber:   i + 1,
			Content:      mockContent(lang, name, topic, i+1),
			ImagePrompt:  fmt.Sprintf("%s, chapter %d of %s %s", anchor, i+1, topic, layout),
			TextPosition: pos,
		}
	}
	return doc, nil
}

// GenerateIllustration はシーン記述から決まる単色の PNG を返します。
func (m *MockGenerator) GenerateIllustration(ctx context.Context, scene string) (string, error) {
	m.mu.Lock()
	m.illustrated = append(m.illustrated, scene)
	if over := len(m.illustrated) - mockRecordLimit; over > 0 {
		m.illustrated = append(m.illustrated[:0], m.illustrated[over:]...)
	}
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", &Error{Kind: KindFatal, Op: OpIllustration, Attempts: 1, Err: err}
	}
	if m.IllustrationErr != nil {
		if err := m.IllustrationErr(scene); err != nil {
			return "", &Error{Kind: Classify(err), Op: OpIllustration, Attempts: 1, Err: err}
		}
	}

	data, err := solidPNG(sceneColor(scene))
	if err != nil {
		return "", &Error{Kind: KindFatal, Op: OpIllustration, Attempts: 1, Err: err}
	}
	return asset.EncodeDataURI("image/png", data), nil
}

// StoryCalls は GenerateStory が呼ばれた回数です。
func (m *MockGenerator) StoryCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.storyCalls
}

// Illustrated は GenerateIllustration に渡されたシーン記述を呼び出し順に返します。
// 直近 mockRecordLimit 件だけを保持します。
func (m *MockGenerator) Illustrated() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.illustrated...)
}

func mockContent(lang domain.Language, name, topic string, page int) string {
	en := fmt.Sprintf("On page %d, %s kept going on the adventure of %s. Every step brought a new surprise.", page, name, topic)
	es := fmt.Sprintf("En la página %d, %s siguió la aventura de %s. Cada paso traía una nueva sorpresa.", page, name, topic)
	switch lang {
	case domain.LanguageSpanish:
		return es
	case domain.LanguageBilingual:
		return en + "\n\n" + es
	}
	return en
}

func sceneColor(scene string) color.RGBA {
	var h uint32 = 2166136261
	for i := 0; i < len(scene); i++ {
		h ^= uint32(scene[i])
		h *= 16777619
	}
	return color.RGBA{R: uint8(h), G: uint8(h >> 8), B: uint8(h >> 16), A: 0xff}
}

func solidPNG(c color.RGBA) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 3; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
