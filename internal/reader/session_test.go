// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reader_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/komik/internal/platform/apperr"
	"github.com/taibuivan/komik/internal/reader"
)

const sessionTTL = 2 * time.Hour

func newStore(t *testing.T) (*reader.RedisSessionStore, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return reader.NewRedisSessionStore(client, sessionTTL), server
}

func newReaderService(t *testing.T, loader reader.Loader) (*reader.Service, *reader.RedisSessionStore) {
	t.Helper()
	store, _ := newStore(t)
	return reader.NewService(loader, store, slog.New(slog.NewTextHandler(io.Discard, nil))), store
}

// # Session Store

/*
TestRedisSessionStore_Lifecycle covers create, get, save and delete.
*/
func TestRedisSessionStore_Lifecycle(t *testing.T) {
	store, server := newStore(t)
	ctx := context.Background()

	position := reader.Position{SessionID: "s-1", Slug: slug, ChapterNumber: 1, Generation: 1}
	require.NoError(t, store.Create(ctx, position))
	assert.True(t, server.Exists("reader:session:s-1"))
	assert.Equal(t, sessionTTL, server.TTL("reader:session:s-1"))

	err := store.Create(ctx, position)
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	got, err := store.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, position, *got)

	moved := position
	moved.PageIndex = 3
	moved.Generation = 2
	require.NoError(t, store.Save(ctx, moved, 1))

	got, err = store.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, 3, got.PageIndex)
	assert.Equal(t, uint64(2), got.Generation)

	require.NoError(t, store.Delete(ctx, "s-1"))
	_, err = store.Get(ctx, "s-1")
	assert.True(t, apperr.IsNotFound(err))

	require.NoError(t, store.Delete(ctx, "never-existed"))
}

/*
TestRedisSessionStore_StaleSave rejects a write carrying an old generation.
*/
func TestRedisSessionStore_StaleSave(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, reader.Position{SessionID: "s-1", Slug: slug, ChapterNumber: 1, Generation: 1}))
	require.NoError(t, store.Save(ctx, reader.Position{SessionID: "s-1", Slug: slug, ChapterNumber: 2, Generation: 2}, 1))

	err := store.Save(ctx, reader.Position{SessionID: "s-1", Slug: slug, ChapterNumber: 1, PageIndex: 5, Generation: 2}, 1)
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	got, err := store.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.ChapterNumber)
	assert.Equal(t, 0, got.PageIndex)
}

/*
TestRedisSessionStore_Expiry forgets sessions after the TTL.
*/
func TestRedisSessionStore_Expiry(t *testing.T) {
	store, server := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, reader.Position{SessionID: "s-1", Slug: slug, ChapterNumber: 1, Generation: 1}))
	server.FastForward(sessionTTL + time.Second)

	_, err := store.Get(ctx, "s-1")
	assert.True(t, apperr.IsNotFound(err))

	err = store.Save(ctx, reader.Position{SessionID: "s-1", Generation: 2}, 1)
	assert.True(t, apperr.IsNotFound(err))
}

// # Service

/*
TestService_SessionTraversal advances across a chapter boundary and back.
*/
func TestService_SessionTraversal(t *testing.T) {
	service, store := newReaderService(t, newLoader([]int{1, 2}, []int{2, 1}))
	ctx := context.Background()

	started, err := service.StartSession(ctx, slug, 1)
	require.NoError(t, err)
	assert.Equal(t, reader.StatusReady, started.View.Status)

	steps := []struct {
		move           func(context.Context, string) (*reader.SessionView, error)
		wantTransition reader.Transition
		wantChapter    int
		wantPage       int
	}{
		{service.Advance, reader.TransitionPage, 1, 1},
		{service.Advance, reader.TransitionChapter, 2, 0},
		{service.Advance, reader.TransitionNone, 2, 0},
		{service.Retreat, reader.TransitionChapter, 1, 0},
	}

	for _, step := range steps {
		session, err := step.move(ctx, started.SessionID)
		require.NoError(t, err)
		assert.Equal(t, step.wantTransition, session.Transition)
		assert.Equal(t, step.wantChapter, session.View.Chapter.ChapterNumber)
		assert.Equal(t, step.wantPage, session.View.PageIndex)
	}

	stored, err := store.Get(ctx, started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.ChapterNumber)
	assert.Equal(t, 0, stored.PageIndex)
	assert.Equal(t, uint64(4), stored.Generation)

	restored, err := service.Session(ctx, started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, restored.View.Chapter.ChapterNumber)
}

/*
TestService_StartSessionNotFound creates nothing for an unknown comic.
*/
func TestService_StartSessionNotFound(t *testing.T) {
	service, _ := newReaderService(t, newLoader([]int{1}, []int{1}))

	_, err := service.StartSession(context.Background(), "unknown-slug", 1)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestService_LoadErrorThenReload keeps the session and recovers once the catalog is back.
*/
func TestService_LoadErrorThenReload(t *testing.T) {
	loader := newLoader([]int{1}, []int{2})
	loader.fail(errors.New("connection refused"))
	service, _ := newReaderService(t, loader)
	ctx := context.Background()

	started, err := service.StartSession(ctx, slug, 1)
	require.NoError(t, err)
	assert.Equal(t, reader.StatusLoadError, started.View.Status)

	moved, err := service.Advance(ctx, started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, reader.TransitionNone, moved.Transition)

	loader.fail(nil)
	reloaded, err := service.Reload(ctx, started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, reader.StatusReady, reloaded.View.Status)
	assert.Equal(t, 0, reloaded.View.PageIndex)
}

/*
TestService_AdvanceIntoEmptyChapter reports the empty neighbour as a not_found
view and leaves the stored session on the chapter being read.
*/
func TestService_AdvanceIntoEmptyChapter(t *testing.T) {
	service, store := newReaderService(t, newLoader([]int{1, 2}, []int{1, 0}))
	ctx := context.Background()

	started, err := service.StartSession(ctx, slug, 1)
	require.NoError(t, err)

	before, err := store.Get(ctx, started.SessionID)
	require.NoError(t, err)

	moved, err := service.Advance(ctx, started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, reader.TransitionNone, moved.Transition)
	assert.Equal(t, reader.StatusNotFound, moved.View.Status)
	assert.NotEmpty(t, moved.View.Error)

	after, err := store.Get(ctx, started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, *before, *after)

	restored, err := service.Session(ctx, started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, reader.StatusReady, restored.View.Status)
	assert.Equal(t, 1, restored.View.Chapter.ChapterNumber)
}

/*
TestService_ConcurrentMoveConflicts rejects a save based on a position someone else already moved.
*/
func TestService_ConcurrentMoveConflicts(t *testing.T) {
	service, store := newReaderService(t, newLoader([]int{1}, []int{3}))
	ctx := context.Background()

	started, err := service.StartSession(ctx, slug, 1)
	require.NoError(t, err)

	snapshot, err := store.Get(ctx, started.SessionID)
	require.NoError(t, err)

	_, err = service.Advance(ctx, started.SessionID)
	require.NoError(t, err)

	late := *snapshot
	late.PageIndex = 2
	late.Generation = snapshot.Generation + 1
	err = store.Save(ctx, late, snapshot.Generation)
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	stored, err := store.Get(ctx, started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.PageIndex)
}

/*
TestService_EndSession removes the session.
*/
func TestService_EndSession(t *testing.T) {
	service, _ := newReaderService(t, newLoader([]int{1}, []int{1}))
	ctx := context.Background()

	started, err := service.StartSession(ctx, slug, 1)
	require.NoError(t, err)
	require.NoError(t, service.EndSession(ctx, started.SessionID))

	_, err = service.Session(ctx, started.SessionID)
	assert.True(t, apperr.IsNotFound(err))
}
