package database

import "go.mongodb.org/mongo-driver/bson/primitive"

// AbstractDocument carries the identity every persisted record has. Concrete
// documents embed it inline:
//
//	type ReservationDocument struct {
//		database.AbstractDocument `bson:",inline"`
//		...
//	}
type AbstractDocument struct {
	ID primitive.ObjectID `bson:"_id" json:"_id"`
}

func (d AbstractDocument) GetID() primitive.ObjectID { return d.ID }

func (d *AbstractDocument) SetID(id primitive.ObjectID) { d.ID = id }

// Document is satisfied by a pointer to any struct embedding AbstractDocument.
type Document[T any] interface {
	*T
	GetID() primitive.ObjectID
	SetID(id primitive.ObjectID)
}
