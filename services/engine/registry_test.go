package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRegistryCreateAndGet(t *testing.T) {
	r := NewRegistry(nil, nil, time.Hour, zap.NewNop())
	sess := r.Create()
	require.NotEmpty(t, sess.SessionID)
	assert.Equal(t, StateIdle, sess.State)
	assert.Contains(t, sess.Identity.RegisterID, "GUEST-")

	got := r.Get(context.Background(), sess.SessionID)
	assert.Same(t, sess, got)

	assert.Nil(t, r.Get(context.Background(), "nope"), "unknown id without a snapshot store")
}

func TestRegistryEvictIdle(t *testing.T) {
	r := NewRegistry(nil, nil, time.Minute, zap.NewNop())
	fresh := r.Create()
	stale := r.Create()
	stale.LastActiveAt = time.Now().UTC().Add(-2 * time.Minute)

	evicted := r.EvictIdle()
	assert.Equal(t, 1, evicted)
	assert.Equal(t, 1, r.Len())
	assert.NotNil(t, r.Get(context.Background(), fresh.SessionID))
	assert.Nil(t, r.Get(context.Background(), stale.SessionID))
}

func TestCorrelationTokenWithoutStore(t *testing.T) {
	r := NewRegistry(nil, nil, time.Hour, zap.NewNop())
	_, err := r.IssueCorrelationToken(context.Background(), "s1")
	assert.Error(t, err)

	_, err = r.ResolveCorrelationToken(context.Background(), "token")
	assert.ErrorIs(t, err, ErrUnknownCorrelation)
}

func TestTranscriptOrderingAndSince(t *testing.T) {
	tr := NewTranscript()
	tr.User("hi")
	tr.Prompt("hello")
	tr.Confirm("done")

	msgs := tr.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "hi", msgs[0].Text)
	assert.Equal(t, "hello", msgs[1].Text)
	assert.Equal(t, "done", msgs[2].Text)

	assert.Len(t, tr.Since(1), 2)
	assert.Nil(t, tr.Since(3))
	assert.Len(t, tr.Since(-5), 3)
}
