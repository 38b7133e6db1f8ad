package persistence

import (
	"context"
	"testing"

	"github.com/farmmarket/backend/internal/domain/market"
	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/farmmarket/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupReviewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.ReviewModel{})
	require.NoError(t, err)

	return db
}

func TestGormReviewRepository_Save(t *testing.T) {
	t.Run("saves and finds a review", func(t *testing.T) {
		db := setupReviewTestDB(t)
		repo := NewGormReviewRepository(db)
		ctx := context.Background()

		review, err := market.NewReview(uuid.New(), uuid.New(), 4, "Sweet and ripe")
		require.NoError(t, err)

		require.NoError(t, repo.Save(ctx, review))

		found, err := repo.FindByUserAndOffer(ctx, review.UserID, review.OfferID)
		require.NoError(t, err)
		assert.Equal(t, review.ID, found.ID)
		assert.Equal(t, 4, found.Rating)
		assert.Equal(t, "Sweet and ripe", found.Comment)
	})

	t.Run("second review for the same user and offer is a duplicate", func(t *testing.T) {
		db := setupReviewTestDB(t)
		repo := NewGormReviewRepository(db)
		ctx := context.Background()

		userID := uuid.New()
		offerID := uuid.New()

		first, err := market.NewReview(userID, offerID, 5, "")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, first))

		second, err := market.NewReview(userID, offerID, 2, "Changed my mind")
		require.NoError(t, err)

		err = repo.Save(ctx, second)
		assert.ErrorIs(t, err, shared.ErrDuplicateReview)
	})

	t.Run("revising an existing review updates it in place", func(t *testing.T) {
		db := setupReviewTestDB(t)
		repo := NewGormReviewRepository(db)
		ctx := context.Background()

		review, err := market.NewReview(uuid.New(), uuid.New(), 3, "Fine")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, review))

		changed, err := review.Revise(5, "Grew on me")
		require.NoError(t, err)
		require.True(t, changed)
		require.NoError(t, repo.Save(ctx, review))

		found, err := repo.FindByID(ctx, review.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, found.Rating)
		assert.Equal(t, "Grew on me", found.Comment)

		count, err := repo.CountByOffer(ctx, review.OfferID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("same user can review different offers", func(t *testing.T) {
		db := setupReviewTestDB(t)
		repo := NewGormReviewRepository(db)
		ctx := context.Background()

		userID := uuid.New()
		for i := 0; i < 2; i++ {
			review, err := market.NewReview(userID, uuid.New(), 4, "")
			require.NoError(t, err)
			require.NoError(t, repo.Save(ctx, review))
		}
	})
}

func TestGormReviewRepository_FindByUserAndOffer(t *testing.T) {
	t.Run("returns not found when no review exists", func(t *testing.T) {
		db := setupReviewTestDB(t)
		repo := NewGormReviewRepository(db)

		_, err := repo.FindByUserAndOffer(context.Background(), uuid.New(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormReviewRepository_FindByOffer(t *testing.T) {
	t.Run("filters by rating", func(t *testing.T) {
		db := setupReviewTestDB(t)
		repo := NewGormReviewRepository(db)
		ctx := context.Background()

		offerID := uuid.New()
		ratings := []int{5, 3, 5}
		for _, rating := range ratings {
			review, err := market.NewReview(uuid.New(), offerID, rating, "")
			require.NoError(t, err)
			require.NoError(t, repo.Save(ctx, review))
		}

		filter := shared.NewFilter()
		filter.Filters["rating"] = 5

		reviews, err := repo.FindByOffer(ctx, offerID, filter)
		require.NoError(t, err)
		assert.Len(t, reviews, 2)
	})
}

func TestGormReviewRepository_Delete(t *testing.T) {
	t.Run("deletes an existing review", func(t *testing.T) {
		db := setupReviewTestDB(t)
		repo := NewGormReviewRepository(db)
		ctx := context.Background()

		review, err := market.NewReview(uuid.New(), uuid.New(), 1, "")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, review))

		require.NoError(t, repo.Delete(ctx, review.ID))

		_, err = repo.FindByID(ctx, review.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("returns not found for unknown review", func(t *testing.T) {
		db := setupReviewTestDB(t)
		repo := NewGormReviewRepository(db)

		err := repo.Delete(context.Background(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
