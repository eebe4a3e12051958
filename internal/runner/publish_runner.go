package runner

import (
	"context"
	"fmt"

	"github.com/shouni/go-pixetale/pkg/domain"
	"github.com/shouni/go-pixetale/pkg/publisher"
)

// PublishRunner は完成した絵本を story.json と HTML として保存するのだ。
type PublishRunner interface {
	Run(ctx context.Context, doc *domain.StoryDocument, outputDir string) (publisher.PublishResult, error)
}

// DefaultPublishRunner は pkg/publisher を利用した標準実装なのだ。
type DefaultPublishRunner struct {
	publisher     *publisher.StoryPublisher
	formats       []publisher.Format
	extractImages bool
}

// NewDefaultPublishRunner は DefaultPublishRunner を生成するのだ。
func NewDefaultPublishRunner(pub *publisher.StoryPublisher, formats []publisher.Format, extractImages bool) *DefaultPublishRunner {
	return &DefaultPublishRunner{
		publisher:     pub,
		formats:       formats,
		extractImages: extractImages,
	}
}

// Run は出力先ディレクトリへ書き出すのだ。
func (pr *DefaultPublishRunner) Run(ctx context.Context, doc *domain.StoryDocument, outputDir string) (publisher.PublishResult, error) {
	res, err := pr.publisher.Publish(ctx, doc, publisher.Options{
		OutputDir:     outputDir,
		Formats:       pr.formats,
		ExtractImages: pr.extractImages,
	})
	if err != nil {
		return res, fmt.Errorf("公開処理に失敗したのだ: %w", err)
	}
	return res, nil
}
