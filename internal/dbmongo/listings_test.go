package dbmongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"prestevent/internal/chat/models"
)

var listingTime = time.Date(2025, 4, 2, 9, 30, 0, 0, time.UTC)

func toDoc(t *testing.T, v interface{}) bson.D {
	t.Helper()
	raw, err := bson.Marshal(v)
	require.NoError(t, err)
	var doc bson.D
	require.NoError(t, bson.Unmarshal(raw, &doc))
	return doc
}

func int64p(v int64) *int64 { return &v }

func sampleAnnonce() *Annonce {
	return &Annonce{
		ID:          "ann-1",
		UserID:      "client-1",
		Title:       "Mariage à Lyon",
		Description: "Traiteur pour 80 personnes",
		EventType:   "mariage",
		EventDate:   time.Date(2025, 9, 13, 0, 0, 0, 0, time.UTC),
		Location:    "Rhône",
		BudgetMin:   int64p(2000),
		BudgetMax:   int64p(5000),
		Status:      AnnonceActive,
		Images:      []string{"img-1"},
		CreatedAt:   listingTime,
		UpdatedAt:   listingTime,
	}
}

func sampleService() *Service {
	return &Service{
		ID:          "svc-1",
		UserID:      "presta-1",
		Name:        "DJ set",
		Description: "Soirée complète",
		Category:    "musique",
		Location:    "Paris",
		PriceMin:    int64p(400),
		Status:      ServiceActive,
		Images:      []string{},
		CreatedAt:   listingTime,
		UpdatedAt:   listingTime,
	}
}

func TestListingStore_Annonces(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create_and_get", func(mt *mtest.T) {
		store := newListingStore(mt.DB)
		a := sampleAnnonce()
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateCursorResponse(0, mt.DB.Name()+".annonces", mtest.FirstBatch, toDoc(t, a)),
		)

		require.NoError(t, store.CreateAnnonce(ctx, a))
		got, err := store.GetAnnonce(ctx, "ann-1")
		require.NoError(t, err)
		assert.Equal(t, a, got)
	})

	mt.Run("get_missing", func(mt *mtest.T) {
		store := newListingStore(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".annonces", mtest.FirstBatch))

		_, err := store.GetAnnonce(ctx, "gone")
		assert.ErrorIs(t, err, models.ErrListingNotFound)
	})

	mt.Run("update_requires_owner_match", func(mt *mtest.T) {
		store := newListingStore(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
		)

		require.NoError(t, store.UpdateAnnonce(ctx, sampleAnnonce()))

		other := sampleAnnonce()
		other.UserID = "someone-else"
		assert.ErrorIs(t, store.UpdateAnnonce(ctx, other), models.ErrListingNotFound)
	})

	mt.Run("delete", func(mt *mtest.T) {
		store := newListingStore(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)

		require.NoError(t, store.DeleteAnnonce(ctx, "ann-1", "client-1"))
		assert.ErrorIs(t, store.DeleteAnnonce(ctx, "ann-1", "client-1"), models.ErrListingNotFound)
	})

	mt.Run("set_featured", func(mt *mtest.T) {
		store := newListingStore(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
		)

		require.NoError(t, store.SetAnnonceFeatured(ctx, "ann-1", true, listingTime))
		assert.ErrorIs(t, store.SetAnnonceFeatured(ctx, "gone", true, listingTime), models.ErrListingNotFound)
	})

	mt.Run("list", func(mt *mtest.T) {
		store := newListingStore(mt.DB)
		first, second := sampleAnnonce(), sampleAnnonce()
		second.ID = "ann-2"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".annonces", mtest.FirstBatch,
			toDoc(t, first), toDoc(t, second)))

		got, err := store.ListAnnonces(ctx, AnnonceFilter{Status: AnnonceActive, EventType: "mariage", Location: "rhô"})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "ann-2", got[1].ID)

		started := mt.GetStartedEvent()
		require.NotNil(t, started)
		filter := started.Command.Lookup("filter").Document()
		assert.Equal(t, "active", filter.Lookup("status").StringValue())
		assert.Equal(t, "mariage", filter.Lookup("event_type").StringValue())
		pattern, options := filter.Lookup("location").Regex()
		assert.Equal(t, "rhô", pattern)
		assert.Equal(t, "i", options)
	})

	mt.Run("list_empty", func(mt *mtest.T) {
		store := newListingStore(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".annonces", mtest.FirstBatch))

		got, err := store.ListAnnonces(ctx, AnnonceFilter{})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestListingStore_Services(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create_get_update_delete", func(mt *mtest.T) {
		store := newListingStore(mt.DB)
		svc := sampleService()
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateCursorResponse(0, mt.DB.Name()+".services", mtest.FirstBatch, toDoc(t, svc)),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		require.NoError(t, store.CreateService(ctx, svc))
		got, err := store.GetService(ctx, "svc-1")
		require.NoError(t, err)
		assert.Equal(t, svc, got)
		require.NoError(t, store.UpdateService(ctx, svc))
		require.NoError(t, store.DeleteService(ctx, "svc-1", "presta-1"))
	})

	mt.Run("list", func(mt *mtest.T) {
		store := newListingStore(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".services", mtest.FirstBatch, toDoc(t, sampleService())))

		got, err := store.ListServices(ctx, ServiceFilter{UserID: "presta-1", Category: "musique"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "DJ set", got[0].Name)
	})

	mt.Run("provider_ids_with_category", func(mt *mtest.T) {
		store := newListingStore(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "values", Value: bson.A{"presta-1", "presta-2"}}))

		ids, err := store.ProviderIDsWithCategory(ctx, "musique")
		require.NoError(t, err)
		assert.Equal(t, []string{"presta-1", "presta-2"}, ids)
	})

	mt.Run("count_active", func(mt *mtest.T) {
		store := newListingStore(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".services", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: 1}, {Key: "n", Value: int32(3)}}))

		n, err := store.CountActiveServices(ctx, "presta-1")
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
	})

	mt.Run("store_error", func(mt *mtest.T) {
		store := newListingStore(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Name: "BadValue", Message: "bad"}))

		_, err := store.ListServices(ctx, ServiceFilter{})
		assert.ErrorIs(t, err, models.ErrStoreUnavailable)
	})
}
