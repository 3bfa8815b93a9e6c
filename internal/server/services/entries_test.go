package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/veildiary/internal/common"
	"github.com/dmitrijs2005/veildiary/internal/logging"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	anonymized, plain int
}

func (r *recorder) EntryCreated(anonymized bool) {
	if anonymized {
		r.anonymized++
	} else {
		r.plain++
	}
}

func newEntryService(feedLimit int) (*EntryService, *fakeManager, *recorder) {
	m := newFakeManager()
	rec := &recorder{}
	ms := NewMappingService(nil, m, nil, logging.Nop{})
	return NewEntryService(nil, m, ms, rec, feedLimit, logging.Nop{}), m, rec
}

func TestEntryCreate_Anonymized(t *testing.T) {
	svc, m, rec := newEntryService(0)
	ctx := context.Background()

	_, err := svc.mappings.CreateOrUpdate(ctx, "u1", "John", "Ethan")
	require.NoError(t, err)
	_, err = svc.mappings.CreateOrUpdate(ctx, "u1", "John Smith", "Ethan Miles")
	require.NoError(t, err)
	_, err = m.profiles.Create(ctx, profileFor("u1", "alice"))
	require.NoError(t, err)

	e, err := svc.Create(ctx, "u1", "  Met John Smith and john.  ", true, true)
	require.NoError(t, err)

	assert.Equal(t, "Met Ethan Miles and Ethan.", e.Content)
	assert.Equal(t, "Met John Smith and john.", e.OriginalContent)
	assert.True(t, e.IsAnonymized)
	assert.Equal(t, "alice", e.Username)
	assert.Equal(t, 1, rec.anonymized)
}

func TestEntryCreate_NoMappingsStoresVerbatim(t *testing.T) {
	svc, _, rec := newEntryService(0)

	e, err := svc.Create(context.Background(), "u1", "Met John", false, true)
	require.NoError(t, err)
	assert.Equal(t, "Met John", e.Content)
	assert.Empty(t, e.OriginalContent)
	assert.False(t, e.IsAnonymized)
	assert.Equal(t, common.AnonymousUsername, e.Username)
	assert.Equal(t, 1, rec.plain)
}

func TestEntryCreate_WithoutAnonymizeIgnoresMappings(t *testing.T) {
	svc, _, _ := newEntryService(0)
	ctx := context.Background()
	_, err := svc.mappings.CreateOrUpdate(ctx, "u1", "John", "Ethan")
	require.NoError(t, err)

	e, err := svc.Create(ctx, "u1", "Met John", true, false)
	require.NoError(t, err)
	assert.Equal(t, "Met John", e.Content)
	assert.False(t, e.IsAnonymized)
}

func TestEntryCreate_Errors(t *testing.T) {
	svc, m, _ := newEntryService(0)
	ctx := context.Background()

	_, err := svc.Create(ctx, "", "hi", true, false)
	assert.ErrorIs(t, err, common.ErrUnauthenticated)

	_, err = svc.Create(ctx, "u1", "   ", true, false)
	assert.ErrorIs(t, err, common.ErrValidation)

	m.entries.err = errors.New("disk full")
	_, err = svc.Create(ctx, "u1", "hi", true, false)
	var se *common.StorageError
	assert.ErrorAs(t, err, &se)
}

func TestEntryFeed_PublicOnlyAndRedacted(t *testing.T) {
	svc, _, _ := newEntryService(2)
	ctx := context.Background()
	_, err := svc.mappings.CreateOrUpdate(ctx, "u1", "John", "Ethan")
	require.NoError(t, err)

	_, err = svc.Create(ctx, "u1", "first John", true, true)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u1", "secret", false, false)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u2", "second", true, false)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u2", "third", true, false)
	require.NoError(t, err)

	feed, err := svc.Feed(ctx, "")
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, "third", feed[0].Content)
	assert.Equal(t, "second", feed[1].Content)

	bigger, _, _ := newEntryService(10)
	bigger.repomanager = svc.repomanager
	all, err := bigger.Feed(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, e := range all {
		assert.True(t, e.IsPublic)
		assert.Empty(t, e.OriginalContent)
	}

	own, err := bigger.Feed(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "first John", own[2].OriginalContent)
}

func TestEntryMineAndByUser(t *testing.T) {
	svc, m, _ := newEntryService(0)
	ctx := context.Background()
	_, err := m.profiles.Create(ctx, profileFor("u1", "alice"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, "u1", "public", true, false)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u1", "private", false, false)
	require.NoError(t, err)

	mine, err := svc.Mine(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "private", mine[0].Content)

	_, err = svc.Mine(ctx, "")
	assert.ErrorIs(t, err, common.ErrUnauthenticated)

	theirs, err := svc.ByUser(ctx, "", " Alice ")
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.Equal(t, "public", theirs[0].Content)

	_, err = svc.ByUser(ctx, "", "nobody")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestEntryDelete(t *testing.T) {
	svc, _, _ := newEntryService(0)
	ctx := context.Background()

	_, err := svc.mappings.CreateOrUpdate(ctx, "u1", "John", "Ethan")
	require.NoError(t, err)
	e, err := svc.Create(ctx, "u1", "John", true, true)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, "u2", e.ID), common.ErrorNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "u1", "bogus"), common.ErrorNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "u1", uuid.NewString()), common.ErrorNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "", e.ID), common.ErrUnauthenticated)

	require.NoError(t, svc.Delete(ctx, "u1", e.ID))

	// mappings outlive entries
	ms, err := svc.mappings.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, ms, 1)
}

func TestTransformText(t *testing.T) {
	svc, _, _ := newEntryService(0)
	ctx := context.Background()
	_, err := svc.mappings.CreateOrUpdate(ctx, "u1", "John", "Ethan")
	require.NoError(t, err)

	out, err := svc.TransformText(ctx, "u1", "John met Johnson", Anonymize)
	require.NoError(t, err)
	assert.Equal(t, "Ethan met Johnson", out)

	back, err := svc.TransformText(ctx, "u1", out, Deanonymize)
	require.NoError(t, err)
	assert.Equal(t, "john met Johnson", back)

	same, err := svc.TransformText(ctx, "u2", "John", Anonymize)
	require.NoError(t, err)
	assert.Equal(t, "John", same)

	_, err = svc.TransformText(ctx, "", "John", Anonymize)
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}
