package server

import (
	"context"
	"testing"

	"github.com/jonathan/resume-enhancer/internal/catalog"
	"github.com/jonathan/resume-enhancer/internal/review"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openReview(t *testing.T, candidateID string) *review.Session {
	t.Helper()
	s, err := review.Open(context.Background(), review.OpenOptions{
		CandidateID: candidateID,
		Catalog:     catalog.Builtin(),
	})
	require.NoError(t, err)
	return s
}

func TestRegistry(t *testing.T) {
	reg := newRegistry()
	a, added := reg.addUnique("alice", openReview(t, "1"))
	require.True(t, added)
	b, _ := reg.addUnique("bob", openReview(t, "1"))
	require.NotEqual(t, a.id, b.id)
	assert.Equal(t, 2, reg.len())

	got, err := reg.get(a.id, "alice")
	require.NoError(t, err)
	assert.Same(t, a, got)

	_, err = reg.get(a.id, "bob")
	var nf *ErrNotFound
	assert.ErrorAs(t, err, &nf)

	assert.Same(t, b, reg.find("bob", "1", review.DefaultJobID))
	assert.Nil(t, reg.find("bob", "2", review.DefaultJobID))
	assert.Nil(t, reg.find("carol", "1", review.DefaultJobID))

	reg.remove(a.id)
	_, err = reg.get(a.id, "alice")
	assert.Error(t, err)

	drained := reg.drain()
	assert.Len(t, drained, 1)
	assert.Equal(t, 0, reg.len())
}

func TestRegistry_AddUniqueKeepsFirstSession(t *testing.T) {
	reg := newRegistry()
	first, added := reg.addUnique("alice", openReview(t, "1"))
	require.True(t, added)

	second, added := reg.addUnique("alice", openReview(t, "1"))
	assert.False(t, added)
	assert.Same(t, first, second)
	assert.Equal(t, 1, reg.len())

	_, added = reg.addUnique("alice", openReview(t, "2"))
	assert.True(t, added)
	assert.Equal(t, 2, reg.len())
}
