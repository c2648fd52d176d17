package log

import (
	"bytes"
	"context"
	"testing"
	"time"

	"cdr.dev/slog"
	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	var buf bytes.Buffer
	ctx := With(context.Background(), Make(&buf, false))

	Debug(ctx, "hidden")
	Info(ctx, "layout done", slog.F("associations", 3))
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "layout done")
	assert.Contains(t, buf.String(), "associations")

	buf.Reset()
	ctx = With(context.Background(), Make(&buf, true))
	Debug(ctx, "shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNamed(t *testing.T) {
	var buf bytes.Buffer
	ctx := With(context.Background(), Make(&buf, false))
	ctx = Named(ctx, "mcdlayout")
	Warn(ctx, "dangling connection")
	assert.Contains(t, buf.String(), "mcdlayout")
}

func TestWithTimeout(t *testing.T) {
	t.Setenv("MCD_TIMEOUT", "")

	ctx, cancel := WithTimeout(context.Background(), time.Minute)
	defer cancel()
	_, ok := ctx.Deadline()
	assert.True(t, ok)

	ctx2, cancel2 := WithTimeout(context.Background(), 0)
	defer cancel2()
	_, ok = ctx2.Deadline()
	assert.False(t, ok)

	t.Setenv("MCD_TIMEOUT", "5")
	ctx3, cancel3 := WithTimeout(context.Background(), 0)
	defer cancel3()
	deadline, ok := ctx3.Deadline()
	assert.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(5*time.Second), deadline, time.Second)
}
