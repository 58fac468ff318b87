package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/sleepr/sleepr/backend/go-services/pkg/logger"
	"github.com/sleepr/sleepr/backend/go-services/pkg/metrics"
)

// ErrNotFound is returned by FindOne and FindOneAndUpdate when the filter matched no document.
var ErrNotFound = errors.New("document not found")

const tracerName = "github.com/sleepr/sleepr/backend/go-services/internal/database"

// AbstractRepository provides the CRUD operations shared by every document
// collection. Concrete repositories embed it and add their own queries.
//
// Store errors are returned as the driver produced them; the only error
// synthesized here is ErrNotFound.
type AbstractRepository[T any, PT Document[T]] struct {
	col    *mongo.Collection
	log    *logger.Logger
	tracer trace.Tracer
}

// NewAbstractRepository binds a repository to col. A nil log falls back to a
// logger named after the collection.
func NewAbstractRepository[T any, PT Document[T]](col *mongo.Collection, log *logger.Logger) *AbstractRepository[T, PT] {
	if log == nil {
		log = logger.Named(col.Name())
	}
	return &AbstractRepository[T, PT]{col: col, log: log, tracer: otel.Tracer(tracerName)}
}

// Collection exposes the underlying collection for custom queries in embedding repositories.
func (r *AbstractRepository[T, PT]) Collection() *mongo.Collection {
	return r.col
}

// Create assigns a fresh ObjectID to doc, inserts it and returns the record as
// the store keeps it, decoded from the inserted BSON.
func (r *AbstractRepository[T, PT]) Create(ctx context.Context, doc T) (*T, error) {
	ctx, span := r.start(ctx, "create")
	defer span.End()

	PT(&doc).SetID(primitive.NewObjectID())
	raw, err := bson.Marshal(doc)
	if err != nil {
		r.observe(span, "create", err)
		return nil, err
	}
	if _, err := r.col.InsertOne(ctx, raw); err != nil {
		r.observe(span, "create", err)
		return nil, err
	}
	r.observe(span, "create", nil)

	// decode what was written so the result matches later reads (dates keep ms precision only)
	var stored T
	if err := bson.Unmarshal(raw, &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// FindOne returns the first document matching filter.
func (r *AbstractRepository[T, PT]) FindOne(ctx context.Context, filter interface{}) (*T, error) {
	ctx, span := r.start(ctx, "findOne")
	defer span.End()

	filter = normalizeFilter(filter)
	var out T
	if err := r.col.FindOne(ctx, filter).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, r.notFound(span, "findOne", filter)
		}
		r.observe(span, "findOne", err)
		return nil, err
	}
	r.observe(span, "findOne", nil)
	return &out, nil
}

// FindOneAndUpdate applies update to the first document matching filter and
// returns the document as it is after the update.
func (r *AbstractRepository[T, PT]) FindOneAndUpdate(ctx context.Context, filter, update interface{}) (*T, error) {
	ctx, span := r.start(ctx, "findOneAndUpdate")
	defer span.End()

	filter = normalizeFilter(filter)
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out T
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, r.notFound(span, "findOneAndUpdate", filter)
		}
		r.observe(span, "findOneAndUpdate", err)
		return nil, err
	}
	r.observe(span, "findOneAndUpdate", nil)
	return &out, nil
}

// Find returns every document matching filter. No match yields an empty slice.
func (r *AbstractRepository[T, PT]) Find(ctx context.Context, filter interface{}) ([]T, error) {
	ctx, span := r.start(ctx, "find")
	defer span.End()

	cur, err := r.col.Find(ctx, normalizeFilter(filter))
	if err != nil {
		r.observe(span, "find", err)
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()

	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		r.observe(span, "find", err)
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	span.SetAttributes(attribute.Int("db.result_count", len(out)))
	r.observe(span, "find", nil)
	return out, nil
}

// FindOneAndDelete removes the first document matching filter and returns it.
// When nothing matches it returns (nil, nil): deleting an absent record is not an error.
func (r *AbstractRepository[T, PT]) FindOneAndDelete(ctx context.Context, filter interface{}) (*T, error) {
	ctx, span := r.start(ctx, "findOneAndDelete")
	defer span.End()

	var out T
	if err := r.col.FindOneAndDelete(ctx, normalizeFilter(filter)).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			span.SetAttributes(attribute.Bool("db.not_found", true))
			r.count("findOneAndDelete", "not_found")
			return nil, nil
		}
		r.observe(span, "findOneAndDelete", err)
		return nil, err
	}
	r.observe(span, "findOneAndDelete", nil)
	return &out, nil
}

func (r *AbstractRepository[T, PT]) start(ctx context.Context, op string) (context.Context, trace.Span) {
	return r.tracer.Start(ctx, "mongodb."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "mongodb"),
			attribute.String("db.mongodb.collection", r.col.Name()),
			attribute.String("db.operation", op),
		),
	)
}

func (r *AbstractRepository[T, PT]) notFound(span trace.Span, op string, filter interface{}) error {
	r.log.Warnf("Document not found with filterQuery %s", FormatFilter(filter))
	span.SetAttributes(attribute.Bool("db.not_found", true))
	r.count(op, "not_found")
	return ErrNotFound
}

func (r *AbstractRepository[T, PT]) observe(span trace.Span, op string, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.count(op, "error")
		return
	}
	r.count(op, "ok")
}

func (r *AbstractRepository[T, PT]) count(op, result string) {
	metrics.RepositoryOperations.WithLabelValues(r.col.Name(), op, result).Inc()
}

func normalizeFilter(filter interface{}) interface{} {
	if filter == nil {
		return bson.D{}
	}
	return filter
}

// FormatFilter renders a filter as relaxed extended JSON for log output.
func FormatFilter(filter interface{}) string {
	b, err := bson.MarshalExtJSON(normalizeFilter(filter), false, false)
	if err != nil {
		return fmt.Sprintf("%v", filter)
	}
	return string(b)
}
