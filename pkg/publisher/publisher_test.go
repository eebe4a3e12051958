package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shouni/go-pixetale/pkg/asset"
	"github.com/shouni/go-pixetale/pkg/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}

func sampleStory() *domain.StoryDocument {
	img := asset.EncodeDataURI("image/png", pngBytes)
	return &domain.StoryDocument{
		Title:         "The Cat Knight",
		CoverImageURL: img,
		Pages: []domain.StoryPage{
			{PageNumber: 1, Content: "Once upon a time.\n\nA cat found a sword.", ImageURL: img, TextPosition: domain.TextBottom},
			{PageNumber: 2, Content: "The end.", ImageURL: "https://example.com/p2.png", TextPosition: domain.TextTop},
		},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" Coloring ")
	require.NoError(t, err)
	assert.Equal(t, FormatColoring, f)

	_, err = ParseFormat("pdf")
	assert.Error(t, err)
}

func TestFileName(t *testing.T) {
	doc := sampleStory()
	assert.Equal(t, "The_Cat_Knight_Printable_Story.html", FileName(doc, FormatPrintable))
	assert.Equal(t, "The_Cat_Knight_ColoringBook.html", FileName(doc, FormatColoring))
	assert.Equal(t, "The_Cat_Knight_Interactive_Flipbook.html", FileName(doc, FormatFlipbook))
}

func TestRenderer_Render(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	doc := sampleStory()
	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, r.Render(&buf, f, doc))
			out := buf.String()
			assert.Contains(t, out, "The Cat Knight")
			assert.Contains(t, out, doc.CoverImageURL, "data URI はそのまま埋め込まれること")
			assert.Contains(t, out, "https://example.com/p2.png")
		})
	}
}

func TestRenderer_Paragraphs(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, FormatPrintable, sampleStory()))
	out := buf.String()
	assert.Contains(t, out, "<p>Once upon a time.</p>")
	assert.Contains(t, out, "<p>A cat found a sword.</p>")
	assert.Contains(t, out, `class="text-wrapper bottom"`)
	assert.Contains(t, out, `class="text-wrapper top"`)
}

func TestRenderer_EscapesUntrustedInput(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	doc := &domain.StoryDocument{
		Title:         "<script>alert(1)</script>",
		CoverImageURL: "javascript:alert(1)",
		Pages: []domain.StoryPage{
			{PageNumber: 1, Content: "<b>bold</b> words", ImageURL: "data:text/html;base64,PGI+"},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, FormatFlipbook, doc))
	out := buf.String()
	assert.NotContains(t, out, "<script>alert(1)</script>")
	assert.NotContains(t, out, "javascript:alert")
	assert.NotContains(t, out, "<b>bold</b>")
	assert.NotContains(t, out, "data:text/html")
}

func TestRenderer_UnknownFormat(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	assert.Error(t, r.Render(&bytes.Buffer{}, Format("pdf"), sampleStory()))
	assert.Error(t, r.Render(&bytes.Buffer{}, FormatPrintable, nil))
}

func TestSafeImageURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"data:image/png;base64,AAAA", "data:image/png;base64,AAAA"},
		{"https://example.com/a.png", "https://example.com/a.png"},
		{"http://example.com/a.png", "http://example.com/a.png"},
		{"javascript:alert(1)", ""},
		{"data:text/html;base64,AAAA", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, string(safeImageURL(tt.in)), tt.in)
	}
}

func TestStoryPublisher_Publish(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	p := NewStoryPublisher(NewLocalWriter(), r)

	dir := t.TempDir()
	doc := sampleStory()
	res, err := p.Publish(context.Background(), doc, Options{OutputDir: dir, ExtractImages: true})
	require.NoError(t, err)

	// story.json は元の文書に復元できること
	raw, err := os.ReadFile(res.StoryPath)
	require.NoError(t, err)
	var got domain.StoryDocument
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, doc.Title, got.Title)
	assert.Len(t, got.Pages, 2)

	require.Len(t, res.HTMLPaths, 3)
	for f, path := range res.HTMLPaths {
		assert.Equal(t, FileName(doc, f), filepath.Base(path))
		assert.FileExists(t, path)
	}

	// リモート URL のページ 2 は保存されない
	require.Len(t, res.ImagePaths, 2)
	assert.Equal(t, "cover.png", filepath.Base(res.ImagePaths[0]))
	assert.Equal(t, "page_1.png", filepath.Base(res.ImagePaths[1]))
	assert.FileExists(t, filepath.Join(dir, "images", "cover.png"))
	data, err := os.ReadFile(res.ImagePaths[1])
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)
}

func TestStoryPublisher_SelectedFormats(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	p := NewStoryPublisher(NewLocalWriter(), r)

	res, err := p.Publish(context.Background(), sampleStory(), Options{
		OutputDir: t.TempDir(),
		Formats:   []Format{FormatColoring},
	})
	require.NoError(t, err)
	assert.Len(t, res.HTMLPaths, 1)
	assert.True(t, strings.HasSuffix(res.HTMLPaths[FormatColoring], "_ColoringBook.html"))
	assert.Empty(t, res.ImagePaths)
}

func TestLocalWriter_RejectsRemotePath(t *testing.T) {
	w := NewLocalWriter()
	err := w.Write(context.Background(), "gs://bucket/story.json", strings.NewReader("{}"), "application/json")
	assert.Error(t, err)
}

func TestStoryPublisher_TitleCannotLeaveOutputDir(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	p := NewStoryPublisher(NewLocalWriter(), r)

	root := t.TempDir()
	outDir := filepath.Join(root, "out")
	doc := sampleStory()
	doc.Title = "../escaped"

	res, err := p.Publish(context.Background(), doc, Options{OutputDir: outDir})
	require.NoError(t, err)
	for _, path := range res.HTMLPaths {
		assert.Equal(t, outDir, filepath.Dir(path))
	}
	assert.NoFileExists(t, filepath.Join(root, "escaped_ColoringBook.html"))
	assert.FileExists(t, filepath.Join(outDir, "escaped_ColoringBook.html"))
}
