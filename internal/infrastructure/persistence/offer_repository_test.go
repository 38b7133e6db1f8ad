package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/farmmarket/backend/internal/domain/market"
	"github.com/farmmarket/backend/internal/domain/shared"
	"github.com/farmmarket/backend/internal/domain/shared/valueobject"
	"github.com/farmmarket/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupOfferTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.OfferModel{}, &models.SelfHarvestEventModel{})
	require.NoError(t, err)

	return db
}

func newTestOffer(t *testing.T, farmerID uuid.UUID, price int64, quantity int, pickable bool) *market.Offer {
	t.Helper()

	offer, err := market.NewOffer(uuid.New(), farmerID, valueobject.NewMoneyEUR(decimal.NewFromInt(price)), quantity, pickable)
	require.NoError(t, err)
	return offer
}

func TestGormOfferRepository_SaveAndFind(t *testing.T) {
	db := setupOfferTestDB(t)
	repo := NewGormOfferRepository(db)
	ctx := context.Background()

	farmerID := uuid.New()
	offer := newTestOffer(t, farmerID, 35, 12, true)
	require.NoError(t, repo.Save(ctx, offer))

	t.Run("round-trips the offer", func(t *testing.T) {
		found, err := repo.FindByID(ctx, offer.ID)
		require.NoError(t, err)
		assert.Equal(t, offer.ProductID, found.ProductID)
		assert.Equal(t, farmerID, found.FarmerID)
		assert.True(t, found.Price.Equal(decimal.NewFromInt(35)))
		assert.Equal(t, 12, found.Quantity)
		assert.Equal(t, market.OfferStatusAvailable, found.Status)
		assert.True(t, found.IsPickable)
	})

	t.Run("returns not found for unknown offer", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("persists a status change", func(t *testing.T) {
		require.NoError(t, offer.MarkSold())
		require.NoError(t, repo.Save(ctx, offer))

		found, err := repo.FindByID(ctx, offer.ID)
		require.NoError(t, err)
		assert.Equal(t, market.OfferStatusSold, found.Status)
	})
}

func TestGormOfferRepository_Filters(t *testing.T) {
	db := setupOfferTestDB(t)
	repo := NewGormOfferRepository(db)
	ctx := context.Background()

	farmerID := uuid.New()
	available := newTestOffer(t, farmerID, 10, 5, false)
	require.NoError(t, repo.Save(ctx, available))

	sold := newTestOffer(t, farmerID, 20, 1, false)
	require.NoError(t, sold.MarkSold())
	require.NoError(t, repo.Save(ctx, sold))

	pickable := newTestOffer(t, uuid.New(), 30, 8, true)
	require.NoError(t, repo.Save(ctx, pickable))

	t.Run("filters by status", func(t *testing.T) {
		filter := shared.NewFilter()
		filter.Filters["status"] = market.OfferStatusAvailable

		offers, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, offers, 2)
	})

	t.Run("filters by pickability", func(t *testing.T) {
		filter := shared.NewFilter()
		filter.Filters["is_pickable"] = true

		offers, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, offers, 1)
		assert.Equal(t, pickable.ID, offers[0].ID)
	})

	t.Run("lists a farmer's offers", func(t *testing.T) {
		offers, err := repo.FindByFarmer(ctx, farmerID, shared.NewFilter())
		require.NoError(t, err)
		assert.Len(t, offers, 2)
	})

	t.Run("lists offers for a product", func(t *testing.T) {
		offers, err := repo.FindByProduct(ctx, pickable.ProductID, shared.NewFilter())
		require.NoError(t, err)
		require.Len(t, offers, 1)
		assert.Equal(t, pickable.ID, offers[0].ID)
	})

	t.Run("counts with the same filters", func(t *testing.T) {
		filter := shared.NewFilter()
		filter.Filters["status"] = market.OfferStatusSold

		count, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestGormOfferRepository_FindPurchasedByUser(t *testing.T) {
	t.Run("resolves offers through the user's order lines", func(t *testing.T) {
		db := setupOrderTestDB(t)
		offerRepo := NewGormOfferRepository(db)
		orderRepo := NewGormOrderRepository(db)
		ctx := context.Background()

		userID := uuid.New()
		bought := seedOffer(t, db, market.OfferStatusAvailable, 1, decimal.NewFromInt(40))
		seedOffer(t, db, market.OfferStatusAvailable, 1, decimal.NewFromInt(60))

		o := newTestOrder(t, []uuid.UUID{bought}, []decimal.Decimal{decimal.NewFromInt(40)})
		o.UserID = userID
		require.NoError(t, orderRepo.CreateWithOffers(ctx, o, o.OfferIDs()))

		offers, err := offerRepo.FindPurchasedByUser(ctx, userID, shared.NewFilter())
		require.NoError(t, err)
		require.Len(t, offers, 1)
		assert.Equal(t, bought, offers[0].ID)

		offers, err = offerRepo.FindPurchasedByUser(ctx, uuid.New(), shared.NewFilter())
		require.NoError(t, err)
		assert.Empty(t, offers)
	})
}

func TestGormOfferRepository_Delete(t *testing.T) {
	t.Run("removes the offer together with its harvest event", func(t *testing.T) {
		db := setupOfferTestDB(t)
		repo := NewGormOfferRepository(db)
		ctx := context.Background()

		offer := newTestOffer(t, uuid.New(), 15, 3, true)
		require.NoError(t, repo.Save(ctx, offer))

		event, err := market.NewSelfHarvestEvent(offer.ID, uuid.New(), time.Now().Add(time.Hour), time.Now().Add(5*time.Hour))
		require.NoError(t, err)
		require.NoError(t, NewGormSelfHarvestEventRepository(db).Save(ctx, event))

		require.NoError(t, repo.Delete(ctx, offer.ID))

		_, err = repo.FindByID(ctx, offer.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		var eventCount int64
		require.NoError(t, db.Model(&models.SelfHarvestEventModel{}).Where("offer_id = ?", offer.ID).Count(&eventCount).Error)
		assert.Zero(t, eventCount)
	})

	t.Run("returns not found for unknown offer", func(t *testing.T) {
		db := setupOfferTestDB(t)
		repo := NewGormOfferRepository(db)

		err := repo.Delete(context.Background(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
