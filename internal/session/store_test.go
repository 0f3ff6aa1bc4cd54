package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohittcodes/data-alchemist/internal/domain"
)

func TestStoreRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	sess, err := store.Create()
	require.NoError(t, err)
	require.NotEqual(t, sess.ID.String(), "00000000-0000-0000-0000-000000000000")

	ds := domain.NewDataset(domain.EntityClients, []string{"clientId"}, []domain.Row{
		{"clientId": "C1", "priority": "high"},
	})
	require.NoError(t, sess.Datasets.Set(ds))
	sess.Rules = append(sess.Rules, domain.Rule{
		Type:  domain.RuleCoRun,
		Tasks: []string{"T1", "T2"},
	})

	saved, err := store.Save(sess)
	require.NoError(t, err)
	assert.False(t, saved.UpdatedAt.Before(sess.CreatedAt))

	loaded, err := store.Get(sess.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Datasets.Clients)
	assert.Equal(t, 1, loaded.Datasets.Clients.RowCount)
	assert.Equal(t, "C1", loaded.Datasets.Clients.Rows[0]["clientId"])
	assert.Len(t, loaded.Rules, 1)
}

func TestStoreGetMissing(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	sess, err := store.Create()
	require.NoError(t, err)
	require.NoError(t, store.Delete(sess.ID))

	_, err = store.Get(sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreDeleteMissingIsNotError(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	sess, err := store.Create()
	require.NoError(t, err)
	require.NoError(t, store.Delete(sess.ID))
	assert.NoError(t, store.Delete(sess.ID))
}

func TestStoreList(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Create()
	require.NoError(t, err)
	second, err := store.Create()
	require.NoError(t, err)

	ids, err := store.List()
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, second.ID)
}

func TestStorePruneExpired(t *testing.T) {
	current := time.Now()
	store, err := NewStore(t.TempDir(), WithClock(func() time.Time { return current }))
	require.NoError(t, err)

	stale, err := store.Create()
	require.NoError(t, err)

	current = current.Add(48 * time.Hour)
	fresh, err := store.Create()
	require.NoError(t, err)

	removed, err := store.Prune(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = store.Get(stale.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Get(fresh.ID)
	assert.NoError(t, err)
}

func TestStorePruneDisabled(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	removed, err := store.Prune(0)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestUpdatePreservesEarlierWrites(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	sess, err := store.Create()
	require.NoError(t, err)

	clients := domain.NewDataset(domain.EntityClients, []string{"clientId"}, []domain.Row{{"clientId": "C1"}})
	_, err = store.Update(sess.ID, func(s *Session) error {
		return s.Datasets.Set(clients)
	})
	require.NoError(t, err)

	tasks := domain.NewDataset(domain.EntityTasks, []string{"taskId"}, []domain.Row{{"taskId": "T1"}})
	updated, err := store.Update(sess.ID, func(s *Session) error {
		return s.Datasets.Set(tasks)
	})
	require.NoError(t, err)

	require.NotNil(t, updated.Datasets.Clients)
	require.NotNil(t, updated.Datasets.Tasks)
	assert.Equal(t, "C1", updated.Datasets.Clients.Rows[0]["clientId"])
}

func TestUpdateErrorAbortsWrite(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	sess, err := store.Create()
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = store.Update(sess.ID, func(s *Session) error {
		s.Rules = append(s.Rules, domain.Rule{ID: uuid.New(), Type: domain.RuleCoRun, Tasks: []string{"T1", "T2"}})
		return boom
	})
	assert.ErrorIs(t, err, boom)

	loaded, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Rules)
}

func TestUpdateMissingSession(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Update(uuid.New(), func(s *Session) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateSerializesConcurrentMutations(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	sess, err := store.Create()
	require.NoError(t, err)

	// An upload-shaped mutation and several rule appends race on the same
	// session; every write must survive.
	clients := domain.NewDataset(domain.EntityClients, []string{"clientId"}, []domain.Row{{"clientId": "C1"}})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := store.Update(sess.ID, func(s *Session) error {
			return s.Datasets.Set(clients)
		})
		assert.NoError(t, err)
	}()
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Update(sess.ID, func(s *Session) error {
				s.Rules = append(s.Rules, domain.Rule{ID: uuid.New(), Type: domain.RuleCoRun, Tasks: []string{"T1", "T2"}})
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	loaded, err := store.Get(sess.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Datasets.Clients)
	assert.Len(t, loaded.Rules, 8)
}
