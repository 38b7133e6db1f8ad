package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/farmmarket/backend/internal/domain/market"
	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHarvestEvent(t *testing.T, offerID uuid.UUID, startsIn, duration time.Duration) *market.SelfHarvestEvent {
	t.Helper()

	start := time.Now().Add(startsIn)
	event, err := market.NewSelfHarvestEvent(offerID, uuid.New(), start, start.Add(duration))
	require.NoError(t, err)
	return event
}

func TestGormSelfHarvestEventRepository_SaveAndFind(t *testing.T) {
	db := setupOfferTestDB(t)
	repo := NewGormSelfHarvestEventRepository(db)
	ctx := context.Background()

	offerID := uuid.New()
	event := newTestHarvestEvent(t, offerID, time.Hour, 4*time.Hour)
	require.NoError(t, repo.Save(ctx, event))

	t.Run("finds by offer", func(t *testing.T) {
		found, err := repo.FindByOffer(ctx, offerID)
		require.NoError(t, err)
		assert.Equal(t, event.ID, found.ID)
		assert.Equal(t, event.AddressID, found.AddressID)
	})

	t.Run("returns not found when the offer has no event", func(t *testing.T) {
		_, err := repo.FindByOffer(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("reports existence per offer", func(t *testing.T) {
		exists, err := repo.ExistsForOffer(ctx, offerID)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsForOffer(ctx, uuid.New())
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("rescheduling persists", func(t *testing.T) {
		newStart := time.Now().Add(24 * time.Hour)
		require.NoError(t, event.Reschedule(newStart, newStart.Add(2*time.Hour)))
		require.NoError(t, repo.Save(ctx, event))

		found, err := repo.FindByID(ctx, event.ID)
		require.NoError(t, err)
		assert.WithinDuration(t, newStart, found.StartsAt, time.Second)
	})
}

func TestGormSelfHarvestEventRepository_FindAll(t *testing.T) {
	db := setupOfferTestDB(t)
	repo := NewGormSelfHarvestEventRepository(db)
	ctx := context.Background()

	morning := newTestHarvestEvent(t, uuid.New(), time.Hour, 3*time.Hour)
	require.NoError(t, repo.Save(ctx, morning))

	nextWeek := newTestHarvestEvent(t, uuid.New(), 7*24*time.Hour, 3*time.Hour)
	require.NoError(t, repo.Save(ctx, nextWeek))

	t.Run("filters events active at a point in time", func(t *testing.T) {
		filter := shared.NewFilter()
		filter.Filters["active_at"] = time.Now().Add(2 * time.Hour)

		events, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, morning.ID, events[0].ID)
	})

	t.Run("sorts by start time ascending", func(t *testing.T) {
		filter := shared.NewFilter()
		filter.OrderBy = "starts_at"
		filter.OrderDir = "asc"

		events, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, morning.ID, events[0].ID)
		assert.Equal(t, nextWeek.ID, events[1].ID)
	})
}

func TestGormSelfHarvestEventRepository_Delete(t *testing.T) {
	db := setupOfferTestDB(t)
	repo := NewGormSelfHarvestEventRepository(db)
	ctx := context.Background()

	t.Run("deletes an existing event", func(t *testing.T) {
		event := newTestHarvestEvent(t, uuid.New(), time.Hour, 2*time.Hour)
		require.NoError(t, repo.Save(ctx, event))

		require.NoError(t, repo.Delete(ctx, event.ID))
		_, err := repo.FindByID(ctx, event.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("returns not found for unknown event", func(t *testing.T) {
		err := repo.Delete(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
