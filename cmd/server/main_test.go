package main

import (
	"context"
	"net"
	"path/filepath"
	"strconv"
	"testing"
	"time"
)

func TestRunReturnsListenErrorWithoutWaitingForSignal(t *testing.T) {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatalf("reserve port: %v", err)
	}
	defer listener.Close()

	t.Setenv("FEED_ENV", "test")
	t.Setenv("FEED_PORT", strconv.Itoa(listener.Addr().(*net.TCPAddr).Port))
	t.Setenv("FEED_DB_PATH", filepath.Join(t.TempDir(), "feed"))
	t.Setenv("FEED_OTEL_ENABLED", "false")

	done := make(chan error, 1)
	go func() { done <- Run(context.Background()) }()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected a listen error for a port already in use")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run kept blocking after the server failed to start")
	}
}
