package reservation

import (
	"time"

	"github.com/sleepr/sleepr/backend/go-services/internal/database"
)

// CollectionName is the MongoDB collection reservations are stored in.
const CollectionName = "reservations"

// ReservationDocument is a booking of a place by a user for a time range.
// User, place and invoice are plain identifiers; nothing checks they exist.
type ReservationDocument struct {
	database.AbstractDocument `bson:",inline"`

	// Timestamp is when the reservation was created.
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	StartDate time.Time `bson:"startDate" json:"startDate"`
	EndDate   time.Time `bson:"endDate" json:"endDate"`
	UserID    string    `bson:"userId" json:"userId"`
	PlaceID   string    `bson:"placeId" json:"placeId"`
	InvoiceID string    `bson:"invoiceId" json:"invoiceId"`
}

// CreateReservationRequest is the payload accepted when booking.
// UserID is replaced by the authenticated subject when one is present.
type CreateReservationRequest struct {
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
	PlaceID   string    `json:"placeId" binding:"required"`
	InvoiceID string    `json:"invoiceId" binding:"required"`
	UserID    string    `json:"userId,omitempty"`
}

// UpdateReservationRequest carries a partial update; nil fields are left untouched.
type UpdateReservationRequest struct {
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	PlaceID   *string    `json:"placeId,omitempty"`
	InvoiceID *string    `json:"invoiceId,omitempty"`
}

// Fields maps the non-nil fields to their stored names.
func (r UpdateReservationRequest) Fields() map[string]interface{} {
	set := map[string]interface{}{}
	if r.StartDate != nil {
		set["startDate"] = r.StartDate.UTC()
	}
	if r.EndDate != nil {
		set["endDate"] = r.EndDate.UTC()
	}
	if r.PlaceID != nil {
		set["placeId"] = *r.PlaceID
	}
	if r.InvoiceID != nil {
		set["invoiceId"] = *r.InvoiceID
	}
	return set
}
