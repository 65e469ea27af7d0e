// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

package websocket

import (
	"context"
	"testing"
	"time"

	"github.com/coff33ninja/cam-control/internal/models"
)

// startHub runs the hub under a cancelable context for the test's lifetime.
func startHub(t *testing.T) *Hub {
	t.Helper()

	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = hub.RunWithContext(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("hub did not stop after context cancellation")
		}
	})
	return hub
}

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.GetClientCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("client count = %d, want %d", hub.GetClientCount(), want)
}

// ============================================================================
// Hub Lifecycle Tests
// ============================================================================

func TestHubRegisterUnregister(t *testing.T) {
	hub := startHub(t)

	client := NewClient(hub, nil)
	hub.Register <- client
	waitForClients(t, hub, 1)

	hub.Unregister <- client
	waitForClients(t, hub, 0)

	// The send channel must be closed on unregister.
	select {
	case _, ok := <-client.send:
		if ok {
			t.Error("expected closed send channel after unregister")
		}
	case <-time.After(time.Second):
		t.Error("send channel not closed after unregister")
	}
}

func TestHubBroadcastReachesAllClients(t *testing.T) {
	hub := startHub(t)

	first := NewClient(hub, nil)
	second := NewClient(hub, nil)
	hub.Register <- first
	hub.Register <- second
	waitForClients(t, hub, 2)

	camera := &models.Camera{ID: 9, Name: "Gate"}
	hub.BroadcastCameraUpdate(MessageTypeCameraUpdated, camera)

	for _, client := range []*Client{first, second} {
		select {
		case msg := <-client.send:
			if msg.Type != MessageTypeCameraUpdated {
				t.Errorf("message type = %q, want %q", msg.Type, MessageTypeCameraUpdated)
			}
			got, ok := msg.Data.(*models.Camera)
			if !ok || got.ID != 9 {
				t.Errorf("message data = %#v, want camera 9", msg.Data)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("client did not receive broadcast")
		}
	}
}

func TestHubNotifyStatusChange(t *testing.T) {
	hub := startHub(t)

	client := NewClient(hub, nil)
	hub.Register <- client
	waitForClients(t, hub, 1)

	hub.NotifyStatusChange(models.EntityCamera, 3, "Gate", "unknown", "online")

	select {
	case msg := <-client.send:
		if msg.Type != MessageTypeStatusChanged {
			t.Fatalf("message type = %q, want %q", msg.Type, MessageTypeStatusChanged)
		}
		change, ok := msg.Data.(*StatusChange)
		if !ok {
			t.Fatalf("message data = %#v, want *StatusChange", msg.Data)
		}
		if change.EntityID != 3 || change.From != "unknown" || change.To != "online" {
			t.Errorf("change = %+v", change)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("client did not receive status change")
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := startHub(t)

	slow := NewClient(hub, nil)
	// Fill the send buffer so the next broadcast cannot be queued.
	for i := 0; i < cap(slow.send); i++ {
		slow.send <- Message{Type: MessageTypePong}
	}
	hub.Register <- slow
	waitForClients(t, hub, 1)

	hub.Broadcast(MessageTypeCameraDeleted, int64(1))
	waitForClients(t, hub, 0)
}

func TestHubShutdownClosesClients(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- hub.RunWithContext(ctx) }()

	client := NewClient(hub, nil)
	hub.Register <- client
	waitForClients(t, hub, 1)

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("RunWithContext() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}
	if hub.GetClientCount() != 0 {
		t.Errorf("client count after shutdown = %d, want 0", hub.GetClientCount())
	}
}
