// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package events_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/taibuivan/komik/internal/platform/events"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func allowAll(*http.Request) bool { return true }

type failingPublisher struct{ calls int }

func (publisher *failingPublisher) Publish(context.Context, events.Event) error {
	publisher.calls++
	return errors.New("broker down")
}

/*
TestEvent_Subject builds the catalog.<entity>.<action> subject.
*/
func TestEvent_Subject(t *testing.T) {
	event := events.New(events.EntityChapter, events.ActionDeleted, "ch-1", "c-1")

	assert.Equal(t, "chapter.deleted", event.Type)
	assert.Equal(t, "catalog.chapter.deleted", event.Subject())
	assert.Equal(t, "c-1", event.ComicID)
	assert.False(t, event.At.IsZero())
}

/*
TestEmit_SwallowsPublishErrors never propagates a broker failure.
*/
func TestEmit_SwallowsPublishErrors(t *testing.T) {
	publisher := &failingPublisher{}

	assert.NotPanics(t, func() {
		events.Emit(context.Background(), publisher, events.New(events.EntityComic, events.ActionCreated, "c-1", ""))
		events.Emit(context.Background(), nil, events.New(events.EntityComic, events.ActionCreated, "c-1", ""))
	})
	assert.Equal(t, 1, publisher.calls)
}

/*
TestHub_BroadcastsToSockets delivers a published event to a connected client
and releases every goroutine on shutdown.
*/
func TestHub_BroadcastsToSockets(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := events.NewHub(allowAll, quietLogger())
	go hub.Run(ctx)

	server := httptest.NewServer(hub)
	defer server.Close()

	connection, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	require.NoError(t, err)
	defer connection.Close()

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, hub.Publish(ctx, events.New(events.EntityComic, events.ActionFeatured, "c-9", "")))

	require.NoError(t, connection.SetReadDeadline(time.Now().Add(2*time.Second)))
	var received events.Event
	require.NoError(t, connection.ReadJSON(&received))
	assert.Equal(t, "comic.featured", received.Type)
	assert.Equal(t, "c-9", received.ID)

	cancel()
	<-hub.Done()
	assert.Equal(t, 0, hub.Clients())

	// The hub closes the socket on shutdown.
	_, _, err = connection.ReadMessage()
	assert.Error(t, err)
}

/*
TestHub_PublishAfterStop reports the stopped hub instead of blocking.
*/
func TestHub_PublishAfterStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := events.NewHub(allowAll, quietLogger())

	go hub.Run(ctx)
	cancel()
	<-hub.Done()

	// Fill the buffer so the next send can only observe done.
	for i := 0; i < 64; i++ {
		if err := hub.Publish(context.Background(), events.New(events.EntityGenre, events.ActionCreated, "1", "")); err != nil {
			assert.Contains(t, err.Error(), "hub stopped")
			return
		}
	}
	t.Fatal("publish never observed the stopped hub")
}
