package asset

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRemotePath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"gs://bucket/out/story.json", true},
		{"https://example.com/story.json", true},
		{"HTTP://example.com/story.json", true},
		{"output/story.json", false},
		{"/tmp/out/story.json", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRemotePath(tt.path))
		})
	}
}

func TestResolveOutputPath_Local(t *testing.T) {
	dir := t.TempDir()
	got, err := ResolveOutputPath(dir, DefaultStoryJSON)
	require.NoError(t, err)
	assert.Equal(t, DefaultStoryJSON, filepath.Base(got))
	assert.Equal(t, filepath.Clean(dir), filepath.Dir(got))
}

func TestGenerateIndexedPath(t *testing.T) {
	got, err := GenerateIndexedPath(DefaultPageFileName, 3)
	require.NoError(t, err)
	assert.Equal(t, "page_3.png", got)
	assert.True(t, PageFileRegex.MatchString(got))
	assert.False(t, PageFileRegex.MatchString("cover.png"))
}
