package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrettyHandler(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	log.Debug("hidden")
	log.With("brand_id", "brand_1").WithGroup("batch").Info("chunk sent", "index", 2, "note", "two words")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "chunk sent")
	assert.Contains(t, out, "brand_id"+reset+"=brand_1")
	assert.Contains(t, out, "batch.index"+reset+"=2")
	assert.Contains(t, out, `batch.note`+reset+`="two words"`)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}
