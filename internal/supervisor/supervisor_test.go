// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

package supervisor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"testing"
	"time"
)

// ============================================================================
// Test Doubles
// ============================================================================

type fakeHTTPServer struct {
	started  atomic.Bool
	shutdown atomic.Bool
	release  chan struct{}
	startErr error
}

func newFakeHTTPServer() *fakeHTTPServer {
	return &fakeHTTPServer{release: make(chan struct{})}
}

func (s *fakeHTTPServer) ListenAndServe() error {
	if s.startErr != nil {
		return s.startErr
	}
	s.started.Store(true)
	<-s.release
	return http.ErrServerClosed
}

func (s *fakeHTTPServer) Shutdown(ctx context.Context) error {
	s.shutdown.Store(true)
	close(s.release)
	return nil
}

type blockingService struct {
	ran atomic.Bool
}

func (s *blockingService) Serve(ctx context.Context) error {
	s.ran.Store(true)
	<-ctx.Done()
	return ctx.Err()
}

func (s *blockingService) String() string { return "blocking-service" }

// ============================================================================
// HTTP Server Service Tests
// ============================================================================

func TestHTTPServerServiceGracefulShutdown(t *testing.T) {
	server := newFakeHTTPServer()
	svc := NewHTTPServerService(server, 2*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	// Wait for the server to start.
	deadline := time.Now().Add(2 * time.Second)
	for !server.started.Load() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if !server.started.Load() {
		t.Fatal("server never started")
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() error = %v, want context.Canceled", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Serve() did not return after cancellation")
	}
	if !server.shutdown.Load() {
		t.Error("Shutdown() was not called")
	}
}

func TestHTTPServerServiceStartFailure(t *testing.T) {
	server := newFakeHTTPServer()
	server.startErr = errors.New("address already in use")
	svc := NewHTTPServerService(server, time.Second)

	if err := svc.Serve(context.Background()); err == nil {
		t.Error("Serve() should surface a startup failure")
	}
}

// ============================================================================
// Tree Tests
// ============================================================================

func TestTreeRunsServices(t *testing.T) {
	tree := NewTree(slog.New(slog.NewTextHandler(io.Discard, nil)), DefaultTreeConfig())

	svc := &blockingService{}
	tree.AddMessagingService(svc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for !svc.ran.Load() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if !svc.ran.Load() {
		t.Fatal("supervised service never ran")
	}

	cancel()
	select {
	case <-errCh:
	case <-time.After(3 * time.Second):
		t.Fatal("supervisor tree did not stop")
	}
}
