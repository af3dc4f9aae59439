package session

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/tripplanner/internal/planner"
)

func newTestStore(t *testing.T, maxSessions int) *Store {
	t.Helper()
	return NewStore(maxSessions, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreateAndDo(t *testing.T) {
	st := newTestStore(t, 0)
	id, err := st.Create()
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, 1, st.Len())

	err = st.Do(id, func(e *planner.Engine) error {
		assert.True(t, e.SetDestination("Kerala"))
		return nil
	})
	require.NoError(t, err)

	err = st.Do(id, func(e *planner.Engine) error {
		assert.Equal(t, "Kerala", e.Destination())
		return nil
	})
	require.NoError(t, err)
}

func TestDo_PropagatesError(t *testing.T) {
	st := newTestStore(t, 0)
	id, err := st.Create()
	require.NoError(t, err)

	err = st.Do(id, func(*planner.Engine) error { return planner.ErrInvalidBudget })
	assert.ErrorIs(t, err, planner.ErrInvalidBudget)
}

func TestDo_UnknownSession(t *testing.T) {
	st := newTestStore(t, 0)
	err := st.Do("missing", func(*planner.Engine) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	st := newTestStore(t, 0)
	id, err := st.Create()
	require.NoError(t, err)

	require.NoError(t, st.Delete(id))
	assert.ErrorIs(t, st.Delete(id), ErrNotFound)
	assert.Equal(t, 0, st.Len())
}

func TestCreate_Limit(t *testing.T) {
	st := newTestStore(t, 2)
	_, err := st.Create()
	require.NoError(t, err)
	_, err = st.Create()
	require.NoError(t, err)

	_, err = st.Create()
	assert.ErrorIs(t, err, ErrLimitReached)
}

func TestSessionsAreIsolated(t *testing.T) {
	st := newTestStore(t, 0)
	a, _ := st.Create()
	b, _ := st.Create()

	require.NoError(t, st.Do(a, func(e *planner.Engine) error {
		e.SetBudget(500)
		return nil
	}))
	require.NoError(t, st.Do(b, func(e *planner.Engine) error {
		assert.Equal(t, float64(0), e.Budget())
		return nil
	}))
}

func TestDo_SerialisesConcurrentCallers(t *testing.T) {
	st := newTestStore(t, 0)
	id, err := st.Create()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = st.Do(id, func(e *planner.Engine) error {
				e.AddActivity("swim")
				return nil
			})
		}()
	}
	wg.Wait()

	require.NoError(t, st.Do(id, func(e *planner.Engine) error {
		assert.Len(t, e.Activities(), 50)
		return nil
	}))
}

func TestIdle(t *testing.T) {
	st := newTestStore(t, 0)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	st.SetClock(func() time.Time { return now })

	old, _ := st.Create()
	now = now.Add(30 * time.Minute)
	fresh, _ := st.Create()
	now = now.Add(10 * time.Minute)

	idle := st.Idle(20 * time.Minute)
	assert.Equal(t, []string{old}, idle)

	// Touching the old session makes it active again.
	require.NoError(t, st.Do(old, func(*planner.Engine) error { return nil }))
	assert.Empty(t, st.Idle(20*time.Minute))
	_ = fresh
}

func TestDeleteIfIdle(t *testing.T) {
	st := newTestStore(t, 0)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	st.SetClock(func() time.Time { return now })

	id, err := st.Create()
	require.NoError(t, err)
	now = now.Add(time.Hour)
	require.Equal(t, []string{id}, st.Idle(20*time.Minute))

	// Used again after the idle snapshot was taken: it must survive.
	require.NoError(t, st.Do(id, func(*planner.Engine) error { return nil }))
	removed, err := st.DeleteIfIdle(id, 20*time.Minute)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 1, st.Len())

	now = now.Add(time.Hour)
	removed, err = st.DeleteIfIdle(id, 20*time.Minute)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Zero(t, st.Len())
	assert.ErrorIs(t, st.Do(id, func(*planner.Engine) error { return nil }), ErrNotFound)

	_, err = st.DeleteIfIdle(id, 20*time.Minute)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_WaitsForInFlightDo(t *testing.T) {
	st := newTestStore(t, 0)
	id, err := st.Create()
	require.NoError(t, err)

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- st.Do(id, func(*planner.Engine) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	deleted := make(chan error, 1)
	go func() { deleted <- st.Delete(id) }()
	close(release)

	require.NoError(t, <-done)
	require.NoError(t, <-deleted)
	assert.ErrorIs(t, st.Do(id, func(*planner.Engine) error { return nil }), ErrNotFound)
}
