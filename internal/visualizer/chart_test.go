package visualizer

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisualizer_RenderChart(t *testing.T) {
	dir := t.TempDir()
	v := New(dir, log.New(io.Discard, "", 0))

	dailyTotals := map[time.Time]int{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC): 3,
		time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC): 1,
		time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC): 4,
	}

	path, err := v.RenderChart(dailyTotals)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "contribution_graph.png"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestVisualizer_RenderChart_SingleDay(t *testing.T) {
	dir := t.TempDir()
	v := New(dir, log.New(io.Discard, "", 0))

	path, err := v.RenderChart(map[time.Time]int{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC): 2,
	})
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestVisualizer_RenderChart_EmptyInput(t *testing.T) {
	dir := t.TempDir()
	v := New(dir, log.New(io.Discard, "", 0))

	path, err := v.RenderChart(nil)
	require.NoError(t, err)
	assert.Empty(t, path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
