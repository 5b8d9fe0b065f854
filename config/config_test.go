package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"render2d/internal/reactable"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "render.yaml", `
window:
  width: 800
  height: 600
  title: demo
batch:
  rect: 50
log:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, "demo", cfg.Window.Title)
	assert.True(t, cfg.Window.VSync, "unset fields keep their defaults")
	assert.Equal(t, uint32(50), cfg.Batch.Rect)
	assert.Equal(t, uint32(1000), cfg.Batch.Line)

	level, err := cfg.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "render.toml", `
[window]
width = 640
height = 480
vsync = false

[batch]
texture = 10
font = 20
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 480, cfg.Window.Height)
	assert.False(t, cfg.Window.VSync)
	assert.Equal(t, uint32(10), cfg.Batch.Texture)
	assert.Equal(t, uint32(20), cfg.Batch.Font)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(writeFile(t, "render.json", `{}`))
	require.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "bad.yaml", "window: [1, 2"))
	require.Error(t, err)

	_, err = Load(writeFile(t, "zero.toml", "[batch]\nline = 0\n"))
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "line batch size is zero")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Window.Width = 0
	cfg.Log.Level = "loud"
	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "window size 0x720")
	assert.Contains(t, err.Error(), "log level")
}

func TestPublish(t *testing.T) {
	bus := reactable.NewBus()
	got := map[reactable.BatchType]uint32{}
	bus.BatchSize.Subscribe(reactable.Reactor[reactable.BatchSizeData]{
		ID: reactable.BatchSizeChanged,
		OnReceive: func(d reactable.BatchSizeData) {
			got[d.TypeOfBatch] = d.Size
		},
	})

	Batch{Texture: 1, Font: 2, Rect: 3, Line: 4}.Publish(bus)
	assert.Equal(t, map[reactable.BatchType]uint32{
		reactable.TextureBatch: 1,
		reactable.FontBatch:    2,
		reactable.RectBatch:    3,
		reactable.LineBatch:    4,
	}, got)
}
