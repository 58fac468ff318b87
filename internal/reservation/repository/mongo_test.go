package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/sleepr/sleepr/backend/go-services/internal/database"
	"github.com/sleepr/sleepr/backend/go-services/internal/reservation"
)

func toBSON(t *testing.T, v interface{}) bson.D {
	t.Helper()
	raw, err := bson.Marshal(v)
	require.NoError(t, err)
	var d bson.D
	require.NoError(t, bson.Unmarshal(raw, &d))
	return d
}

func TestReservationsRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	t1 := time.Date(2026, 11, 1, 14, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, 11, 3, 11, 0, 0, 0, time.UTC)
	t3 := time.Date(2026, 11, 4, 11, 0, 0, 0, time.UTC)

	mt.Run("round trip keeps every field", func(mt *mtest.T) {
		repo := NewReservationsRepositoryForCollection(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		in := reservation.ReservationDocument{
			Timestamp: time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC),
			StartDate: t1,
			EndDate:   t2,
			UserID:    "user-1",
			PlaceID:   "place-1",
			InvoiceID: "invoice-1",
		}
		created, err := repo.Create(ctx, in)
		require.NoError(mt, err)
		require.False(mt, created.ID.IsZero())

		started := mt.GetStartedEvent()
		docs, err := started.Command.Lookup("documents").Array().Values()
		require.NoError(mt, err)
		stored := docs[0].Document()
		require.Equal(mt, "user-1", stored.Lookup("userId").StringValue())
		require.Equal(mt, "place-1", stored.Lookup("placeId").StringValue())
		require.Equal(mt, "invoice-1", stored.Lookup("invoiceId").StringValue())
		require.Equal(mt, t1, stored.Lookup("startDate").Time().UTC())
		require.Equal(mt, t2, stored.Lookup("endDate").Time().UTC())

		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, toBSON(mt.T, created)))
		got, err := repo.FindOne(ctx, bson.M{"_id": created.ID})
		require.NoError(mt, err)
		require.Equal(mt, created.ID, got.ID)
		require.Equal(mt, in.Timestamp, got.Timestamp)
		require.Equal(mt, t1, got.StartDate)
		require.Equal(mt, t2, got.EndDate)
		require.Equal(mt, "user-1", got.UserID)
		require.Equal(mt, "place-1", got.PlaceID)
		require.Equal(mt, "invoice-1", got.InvoiceID)
	})

	mt.Run("update returns the new end date", func(mt *mtest.T) {
		repo := NewReservationsRepositoryForCollection(mt.Coll)
		doc := reservation.ReservationDocument{StartDate: t1, EndDate: t3, UserID: "user-1"}
		doc.SetID(primitive.NewObjectID())
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: toBSON(mt.T, doc)}))

		got, err := repo.FindOneAndUpdate(ctx, bson.M{"userId": "user-1"}, bson.M{"$set": bson.M{"endDate": t3}})
		require.NoError(mt, err)
		require.Equal(mt, t3, got.EndDate)
	})

	mt.Run("miss on update is not found", func(mt *mtest.T) {
		repo := NewReservationsRepositoryForCollection(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := repo.FindOneAndUpdate(ctx, bson.M{"userId": "nobody"}, bson.M{"$set": bson.M{"endDate": t3}})
		require.ErrorIs(mt, err, database.ErrNotFound)
	})
}

func TestReservationDocumentFieldNames(t *testing.T) {
	doc := reservation.ReservationDocument{UserID: "u"}
	d := toBSON(t, doc)
	keys := make([]string, 0, len(d))
	for _, e := range d {
		keys = append(keys, e.Key)
	}
	require.Equal(t, []string{"_id", "timestamp", "startDate", "endDate", "userId", "placeId", "invoiceId"}, keys)
}
