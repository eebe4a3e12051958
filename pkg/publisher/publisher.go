package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/shouni/go-pixetale/pkg/asset"
	"github.com/shouni/go-pixetale/pkg/domain"
)

// Options はパブリッシュ動作を制御する設定項目です。
type Options struct {
	OutputDir     string
	Formats       []Format // 空なら全形式
	ExtractImages bool     // 挿絵を個別の画像ファイルとしても保存する
}

// PublishResult はパブリッシュ処理の結果として生成されたファイルの情報を保持します。
type PublishResult struct {
	StoryPath  string
	HTMLPaths  map[Format]string
	ImagePaths []string
}

// StoryPublisher は完成した絵本を JSON と HTML に書き出します。
type StoryPublisher struct {
	writer   OutputWriter
	renderer *Renderer
}

// NewStoryPublisher は StoryPublisher を生成します。
func NewStoryPublisher(writer OutputWriter, renderer *Renderer) *StoryPublisher {
	return &StoryPublisher{writer: writer, renderer: renderer}
}

// Publish は story.json、各形式の HTML、必要なら挿絵ファイルを書き出します。
func (p *StoryPublisher) Publish(ctx context.Context, doc *domain.StoryDocument, opts Options) (PublishResult, error) {
	result := PublishResult{HTMLPaths: make(map[Format]string)}
	if doc == nil {
		return result, fmt.Errorf("publisher: データが空です")
	}

	// 1. story.json
	storyPath, err := asset.ResolveOutputPath(opts.OutputDir, asset.DefaultStoryJSON)
	if err != nil {
		return result, err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return result, fmt.Errorf("JSONの生成に失敗しました: %w", err)
	}
	if err := p.writer.Write(ctx, storyPath, bytes.NewReader(data), "application/json"); err != nil {
		return result, fmt.Errorf("story.jsonの書き込みに失敗しました: %w", err)
	}
	result.StoryPath = storyPath

	// 2. HTML
	formats := opts.Formats
	if len(formats) == 0 {
		formats = Formats
	}
	for _, f := range formats {
		htmlPath, err := asset.ResolveOutputPath(opts.OutputDir, FileName(doc, f))
		if err != nil {
			return result, err
		}
		var buf bytes.Buffer
		if err := p.renderer.Render(&buf, f, doc); err != nil {
			return result, err
		}
		if err := p.writer.Write(ctx, htmlPath, &buf, "text/html; charset=utf-8"); err != nil {
			return result, fmt.Errorf("HTMLの書き込みに失敗しました: %w", err)
		}
		result.HTMLPaths[f] = htmlPath
		slog.InfoContext(ctx, "HTMLを書き出しました", "format", f, "path", htmlPath)
	}

	// 3. 挿絵
	if opts.ExtractImages {
		paths, err := p.saveImages(ctx, doc, opts.OutputDir)
		if err != nil {
			return result, err
		}
		result.ImagePaths = paths
	}
	return result, nil
}

// saveImages は data URI の挿絵をデコードして images/ 以下に保存します。
// data URI でない画像（リモート URL）は飛ばします。
func (p *StoryPublisher) saveImages(ctx context.Context, doc *domain.StoryDocument, outputDir string) ([]string, error) {
	imgDir, err := asset.ResolveOutputPath(outputDir, asset.DefaultImageDir)
	if err != nil {
		return nil, err
	}

	var paths []string
	save := func(fileName, uri string) error {
		if !asset.IsDataURI(uri) {
			return nil
		}
		mimeType, data, err := asset.DecodeDataURI(uri)
		if err != nil {
			return err
		}
		fileName = strings.TrimSuffix(fileName, path.Ext(fileName)) + asset.ExtensionFor(mimeType)
		fullPath, err := asset.ResolveOutputPath(imgDir, fileName)
		if err != nil {
			return fmt.Errorf("出力パスの解決に失敗しました: %w", err)
		}
		if err := p.writer.Write(ctx, fullPath, bytes.NewReader(data), mimeType); err != nil {
			return fmt.Errorf("画像の書き込みに失敗しました %s: %w", fullPath, err)
		}
		paths = append(paths, fullPath)
		return nil
	}

	if err := save(asset.DefaultCoverFileName, doc.CoverImageURL); err != nil {
		return nil, err
	}
	for i, page := range doc.Pages {
		name, err := asset.GenerateIndexedPath(asset.DefaultPageFileName, i+1)
		if err != nil {
			return nil, err
		}
		if err := save(name, page.ImageURL); err != nil {
			return nil, err
		}
	}
	return paths, nil
}
