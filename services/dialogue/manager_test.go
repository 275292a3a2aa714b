package dialogue

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRedisStore(t *testing.T) (*RedisSessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisSessionStore(client, time.Hour), mr
}

func TestRedisSessionStore(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	snap, err := store.Load(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, snap)

	s := newTestSession(nil)
	submitAll(t, s, "3/15/2024")
	require.NoError(t, store.Save(ctx, s.Snapshot()))
	assert.True(t, mr.Exists(sessionKeyPrefix+"s-1"))
	assert.Equal(t, time.Hour, mr.TTL(sessionKeyPrefix+"s-1"))

	loaded, err := store.Load(ctx, "s-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "3/15/2024", *loaded.Draft.Date)
	assert.Len(t, loaded.Messages, 3)

	require.NoError(t, store.Delete(ctx, "s-1"))
	assert.False(t, mr.Exists(sessionKeyPrefix+"s-1"))
}

func TestManagerLifecycle(t *testing.T) {
	store, _ := newRedisStore(t)
	creator := &fakeCreator{eventID: "evt-42"}
	m := NewManager(store, creator, Options{}, time.Hour, zap.NewNop())
	ctx := context.Background()

	view, err := m.Open(ctx, "user-1", ShellPage)
	require.NoError(t, err)
	id := view.SessionID
	require.NotEmpty(t, id)
	assert.Equal(t, ShellPage, view.Shell)

	for _, in := range []string{"3/15/2024", "10:00am-11:30am", "50", "AI Ethics Roundtable", "yes"} {
		_, err := m.Submit(ctx, id, "user-1", in)
		require.NoError(t, err)
	}

	_, err = m.Submit(ctx, id, "someone-else", "hi")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	res, err := m.Finalize(ctx, id, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "evt-42", res.EventID)
	assert.Equal(t, "/events/evt-42", res.RedirectPath)

	require.NoError(t, m.Close(ctx, id, "user-1"))
	_, err = m.View(ctx, id, "user-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManagerRestoresFromStore(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	first := NewManager(store, &fakeCreator{}, Options{}, time.Hour, nil)
	view, err := first.Open(ctx, "user-1", ShellModal)
	require.NoError(t, err)
	_, err = first.Submit(ctx, view.SessionID, "user-1", "3/15/2024")
	require.NoError(t, err)

	// A fresh manager simulates a process restart.
	second := NewManager(store, &fakeCreator{}, Options{}, time.Hour, nil)
	restored, err := second.View(ctx, view.SessionID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, StepTimeSlot, restored.Draft.Step)
	assert.Len(t, restored.Messages, 3)

	reset, err := second.Reset(ctx, view.SessionID, "user-1")
	require.NoError(t, err)
	assert.Len(t, reset.Messages, 1)
}

func TestManagerRejectsUnknownShell(t *testing.T) {
	store, _ := newRedisStore(t)
	m := NewManager(store, &fakeCreator{}, Options{}, time.Hour, nil)
	_, err := m.Open(context.Background(), "user-1", "popup")
	assert.Error(t, err)
}
