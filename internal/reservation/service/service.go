package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sleepr/sleepr/backend/go-services/internal/reservation"
	"github.com/sleepr/sleepr/backend/go-services/internal/reservation/repository"
)

var (
	ErrInvalidID = errors.New("invalid reservation id")
	ErrNoChanges = errors.New("update contains no fields")
)

// Service defines the reservation operations used by the handler layer.
// Lookups and updates of a missing reservation fail with database.ErrNotFound;
// Remove of a missing reservation returns (nil, nil).
type Service interface {
	Create(ctx context.Context, req reservation.CreateReservationRequest, userID string) (*reservation.ReservationDocument, error)
	FindAll(ctx context.Context, userID string) ([]reservation.ReservationDocument, error)
	FindOne(ctx context.Context, id string) (*reservation.ReservationDocument, error)
	Update(ctx context.Context, id string, req reservation.UpdateReservationRequest) (*reservation.ReservationDocument, error)
	Remove(ctx context.Context, id string) (*reservation.ReservationDocument, error)
}

type reservationsService struct {
	repo repository.Repository
	now  func() time.Time
}

// NewService returns a Service backed by repo.
func NewService(repo repository.Repository) Service {
	return &reservationsService{repo: repo, now: time.Now}
}

func (s *reservationsService) Create(ctx context.Context, req reservation.CreateReservationRequest, userID string) (*reservation.ReservationDocument, error) {
	if userID == "" {
		userID = req.UserID
	}
	doc := reservation.ReservationDocument{
		// MongoDB keeps millisecond precision
		Timestamp: s.now().UTC().Truncate(time.Millisecond),
		StartDate: req.StartDate.UTC(),
		EndDate:   req.EndDate.UTC(),
		UserID:    userID,
		PlaceID:   req.PlaceID,
		InvoiceID: req.InvoiceID,
	}
	return s.repo.Create(ctx, doc)
}

func (s *reservationsService) FindAll(ctx context.Context, userID string) ([]reservation.ReservationDocument, error) {
	filter := bson.M{}
	if userID != "" {
		filter["userId"] = userID
	}
	return s.repo.Find(ctx, filter)
}

func (s *reservationsService) FindOne(ctx context.Context, id string) (*reservation.ReservationDocument, error) {
	filter, err := byID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.FindOne(ctx, filter)
}

func (s *reservationsService) Update(ctx context.Context, id string, req reservation.UpdateReservationRequest) (*reservation.ReservationDocument, error) {
	filter, err := byID(id)
	if err != nil {
		return nil, err
	}
	set := req.Fields()
	if len(set) == 0 {
		return nil, ErrNoChanges
	}
	return s.repo.FindOneAndUpdate(ctx, filter, bson.M{"$set": set})
}

func (s *reservationsService) Remove(ctx context.Context, id string) (*reservation.ReservationDocument, error) {
	filter, err := byID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.FindOneAndDelete(ctx, filter)
}

func byID(id string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	return bson.M{"_id": oid}, nil
}
