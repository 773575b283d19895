package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZapLogger_WritesJSONWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewZapLoggerTo(&buf).With("module", "rest")

	log.Info(context.Background(), "request served", "status", 200)
	require.NoError(t, log.(*ZapLogger).Sync())

	line := strings.TrimSpace(buf.String())
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))

	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "request served", entry["msg"])
	assert.Equal(t, "rest", entry["module"])
	assert.EqualValues(t, 200, entry["status"])
}

func TestZapLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := NewZapLoggerTo(&buf)
	ctx := context.Background()

	log.Debug(ctx, "dbg")
	log.Warn(ctx, "wrn")
	log.Error(ctx, "err")

	out := buf.String()
	for _, lvl := range []string{`"level":"debug"`, `"level":"warn"`, `"level":"error"`} {
		assert.Contains(t, out, lvl)
	}
}

func TestNew_Formats(t *testing.T) {
	var buf bytes.Buffer

	for _, f := range []string{"", FormatJSON, FormatText, FormatZap} {
		l, err := New(f, &buf)
		require.NoError(t, err, f)
		require.NotNil(t, l, f)
	}

	_, err := New("xml", &buf)
	assert.Error(t, err)
}

func TestNew_JSONHandler(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(FormatJSON, &buf)
	require.NoError(t, err)

	l.Info(context.Background(), "hello", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"k":"v"`)
}
