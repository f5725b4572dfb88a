package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))

	l := Discard()
	assert.Same(t, l, FromContext(WithLogger(context.Background(), l)))
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	New("warn", "json", &buf).Info("hidden")
	assert.Empty(t, buf.String())

	New("debug", "json", &buf).Debug("shown", "file", "a.tsx")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"file":"a.tsx"`)

	buf.Reset()
	New("bogus", "text", &buf).Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}
