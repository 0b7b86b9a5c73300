package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONWithService(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("cornerstore", "info", &buf)
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("request", "status", 201, "duration_ms", int64(4))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "cornerstore", line["service"])
	assert.Equal(t, "request", line["msg"])
	assert.Equal(t, float64(201), line["status"])
}

func TestNew_Levels(t *testing.T) {
	for _, lvl := range []string{"", "debug", "INFO", "warn", "error"} {
		_, err := New("svc", lvl, &bytes.Buffer{})
		assert.NoError(t, err, lvl)
	}
	_, err := New("svc", "loud", &bytes.Buffer{})
	assert.Error(t, err)
}
