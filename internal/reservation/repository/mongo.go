package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sleepr/sleepr/backend/go-services/internal/database"
	"github.com/sleepr/sleepr/backend/go-services/internal/reservation"
	"github.com/sleepr/sleepr/backend/go-services/pkg/logger"
)

// Repository defines persistence operations for reservations.
// Filters and updates are MongoDB query documents.
type Repository interface {
	Create(ctx context.Context, doc reservation.ReservationDocument) (*reservation.ReservationDocument, error)
	Find(ctx context.Context, filter interface{}) ([]reservation.ReservationDocument, error)
	FindOne(ctx context.Context, filter interface{}) (*reservation.ReservationDocument, error)
	FindOneAndUpdate(ctx context.Context, filter, update interface{}) (*reservation.ReservationDocument, error)
	FindOneAndDelete(ctx context.Context, filter interface{}) (*reservation.ReservationDocument, error)
}

// ReservationsRepository is the MongoDB-backed Repository.
type ReservationsRepository struct {
	*database.AbstractRepository[reservation.ReservationDocument, *reservation.ReservationDocument]
}

var _ Repository = (*ReservationsRepository)(nil)

// NewReservationsRepository binds the repository to the reservations collection of db.
func NewReservationsRepository(db *mongo.Database) *ReservationsRepository {
	return NewReservationsRepositoryForCollection(db.Collection(reservation.CollectionName))
}

// NewReservationsRepositoryForCollection binds the repository to col.
func NewReservationsRepositoryForCollection(col *mongo.Collection) *ReservationsRepository {
	base := database.NewAbstractRepository[reservation.ReservationDocument, *reservation.ReservationDocument](
		col, logger.Named("ReservationsRepository"),
	)
	return &ReservationsRepository{AbstractRepository: base}
}
