package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestRunUntilSignal_ReturnsServerError(t *testing.T) {
	bindErr := errors.New("listen tcp :8080: bind: address already in use")

	done := make(chan error, 1)
	go func() {
		done <- runUntilSignal(context.Background(), func(context.Context) error {
			return bindErr
		}, make(chan os.Signal), discard)
	}()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.True(t, errors.Is(err, bindErr))
	case <-time.After(5 * time.Second):
		t.Fatal("runUntilSignal did not return after the server failed")
	}
}

func TestRunUntilSignal_SignalStopsServer(t *testing.T) {
	quit := make(chan os.Signal, 1)
	stopped := make(chan struct{})

	quit <- syscall.SIGTERM
	err := runUntilSignal(context.Background(), func(ctx context.Context) error {
		<-ctx.Done()
		close(stopped)
		return nil
	}, quit, discard)

	require.NoError(t, err)
	select {
	case <-stopped:
	default:
		t.Fatal("server context was not canceled")
	}
}
