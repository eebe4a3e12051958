package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shouni/go-pixetale/examples"
	"github.com/shouni/go-pixetale/internal/config"
	"github.com/shouni/go-pixetale/pkg/domain"
	"github.com/shouni/go-pixetale/pkg/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		ImageMaxAttempts: 3,
		Options: config.GenerateOptions{
			Topic:     "a lost robot",
			Language:  "English",
			OutputDir: t.TempDir(),
			Mock:      true,
		},
	}
}

func TestExecute_WritesBook(t *testing.T) {
	cfg := mockConfig(t)
	cfg.Options.ExtractImages = true
	require.NoError(t, Execute(context.Background(), cfg))

	entries, err := os.ReadDir(cfg.Options.OutputDir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Contains(t, names, "story.json")
	assert.Contains(t, names, "The_Quest_of_a_lost_robot_Printable_Story.html")
	assert.Contains(t, names, "images")
}

func TestExecute_EmptyTopic(t *testing.T) {
	cfg := mockConfig(t)
	cfg.Options.Topic = "  "
	assert.ErrorIs(t, Execute(context.Background(), cfg), state.ErrEmptyTopic)
}

func TestExecute_CancelStopsPageWait(t *testing.T) {
	cfg := mockConfig(t)
	cfg.Options.PageDelay = time.Hour
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := Execute(ctx, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 10*time.Second)

	_, statErr := os.Stat(filepath.Join(cfg.Options.OutputDir, "story.json"))
	assert.True(t, os.IsNotExist(statErr), "中断したら何も書き出さない")
}

func TestExecute_CanceledBeforeStart(t *testing.T) {
	cfg := mockConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Execute(ctx, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "The quest failed")
}

func TestExecute_UnknownLanguage(t *testing.T) {
	cfg := mockConfig(t)
	cfg.Options.Language = "Klingon"
	assert.Error(t, Execute(context.Background(), cfg))
}

func TestExecuteStoryOnly_ThenExport(t *testing.T) {
	cfg := mockConfig(t)
	require.NoError(t, ExecuteStoryOnly(context.Background(), cfg))

	storyPath := filepath.Join(cfg.Options.OutputDir, "story.json")
	raw, err := os.ReadFile(storyPath)
	require.NoError(t, err)
	var doc domain.StoryDocument
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Len(t, doc.Pages, 10)
	for _, p := range doc.Pages {
		assert.Empty(t, p.ImageURL)
	}

	exportCfg := mockConfig(t)
	exportCfg.Options.StoryFile = storyPath
	exportCfg.Options.Formats = []string{"flipbook"}
	require.NoError(t, ExecuteExport(context.Background(), exportCfg, strings.NewReader("")))

	_, err = os.Stat(filepath.Join(exportCfg.Options.OutputDir, doc.ExportBaseName()+"_Interactive_Flipbook.html"))
	assert.NoError(t, err)
}

func TestExecuteExport_FromStdin(t *testing.T) {
	cfg := mockConfig(t)
	cfg.Options.StoryFile = "-"
	stdin := strings.NewReader(`{"title":"Moon Cat","pages":[{"pageNumber":1,"content":"Hi.","imagePrompt":"a cat","textPosition":"top"}]}`)
	require.NoError(t, ExecuteExport(context.Background(), cfg, stdin))

	_, err := os.Stat(filepath.Join(cfg.Options.OutputDir, "Moon_Cat_ColoringBook.html"))
	assert.NoError(t, err)
}

func TestExecuteExport_InvalidStory(t *testing.T) {
	cfg := mockConfig(t)
	cfg.Options.StoryFile = "-"
	err := ExecuteExport(context.Background(), cfg, strings.NewReader(`{"title":"","pages":[]}`))
	assert.Error(t, err)
}

func TestExecuteExport_Sample(t *testing.T) {
	cfg := mockConfig(t)
	cfg.Options.StoryFile = "-"
	cfg.Options.ExtractImages = true
	require.NoError(t, ExecuteExport(context.Background(), cfg, bytes.NewReader(examples.SampleStoryJSON)))

	_, err := os.Stat(filepath.Join(cfg.Options.OutputDir, "images", "cover.png"))
	assert.NoError(t, err)
}
