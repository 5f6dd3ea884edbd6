package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ppsociety/membership-backend/internal/models"
	"github.com/ppsociety/membership-backend/internal/repositories"
)

// Compile-time check to ensure EventRepository implements the interface
var _ repositories.EventRepository = (*EventRepository)(nil)

// EventRepository handles MongoDB operations for Event
type EventRepository struct {
	collection *mongo.Collection
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{
		collection: db.Collection("events"),
	}
}

// EnsureIndexes creates the indexes the event collection relies on.
func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: 1}}, Options: options.Index().SetName("events_date")},
		{Keys: bson.D{{Key: "category", Value: 1}}, Options: options.Index().SetName("events_category")},
		{Keys: bson.D{{Key: "status", Value: 1}}, Options: options.Index().SetName("events_status")},
		{Keys: bson.D{{Key: "organizer", Value: 1}}, Options: options.Index().SetName("events_organizer")},
		{Keys: bson.D{{Key: "registrations.user", Value: 1}}, Options: options.Index().SetName("events_registrations_user")},
	})
	return err
}

// Create inserts a new event
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	event.ID = primitive.NewObjectID()
	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()
	if event.Registrations == nil {
		event.Registrations = []models.Registration{}
	}
	_, err := r.collection.InsertOne(ctx, event)
	return err
}

// FindByID finds an event by ID
func (r *EventRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var event models.Event
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

// Find retrieves events matching the filter with pagination, soonest first
func (r *EventRepository) Find(ctx context.Context, filter repositories.EventFilter, page, limit int) ([]*models.Event, int64, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.EventType != "" {
		query["eventType"] = filter.EventType
	}
	if filter.Upcoming {
		query["date"] = bson.M{"$gte": time.Now()}
	}

	findOpts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, query, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var events []*models.Event
	if err = cursor.All(ctx, &events); err != nil {
		return nil, 0, err
	}
	if events == nil {
		events = []*models.Event{}
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// Update updates an existing event
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	event.UpdatedAt = time.Now()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": event.ID}, bson.M{"$set": event})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Delete deletes an event by ID
func (r *EventRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// activeEntry matches a non-cancelled roster entry for the user.
func activeEntry(userID primitive.ObjectID) bson.M {
	return bson.M{"$elemMatch": bson.M{
		"user":   userID,
		"status": bson.M{"$ne": models.RegistrationStatusCancelled},
	}}
}

// TryRegister performs the capacity check and roster append as one
// conditional update, so concurrent registrations for the last spot cannot
// both succeed. The filter re-states every admission rule; when it does not
// match, a follow-up read classifies the refusal.
func (r *EventRepository) TryRegister(ctx context.Context, eventID primitive.ObjectID, reg models.Registration) error {
	now := time.Now()
	filter := bson.M{
		"_id":           eventID,
		"status":        models.EventStatusPublished,
		"registrations": bson.M{"$not": activeEntry(reg.User)},
		"$and": []bson.M{
			{"$or": []bson.M{
				{"registrationDeadline": nil},
				{"registrationDeadline": bson.M{"$gte": now}},
			}},
			{"$or": []bson.M{
				{"maxAttendees": nil},
				{"$expr": bson.M{"$lt": bson.A{
					bson.M{"$size": bson.M{"$filter": bson.M{
						"input": "$registrations",
						"as":    "r",
						"cond":  bson.M{"$eq": bson.A{"$$r.status", models.RegistrationStatusRegistered}},
					}}},
					"$maxAttendees",
				}}},
			}},
		},
	}
	update := bson.M{
		"$push": bson.M{"registrations": reg},
		"$set":  bson.M{"updatedAt": now},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount > 0 {
		return nil
	}

	event, err := r.FindByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.ActiveRegistration(reg.User) != nil {
		return repositories.ErrAlreadyRegistered
	}
	return repositories.ErrRegistrationClosed
}

// removeRegistrationFilter matches the event only when the user has an
// active roster entry, so a miss is classifiable without relying on
// modified counts (the $set on updatedAt would report a modification even
// when the $pull removes nothing).
func removeRegistrationFilter(eventID, userID primitive.ObjectID) bson.M {
	return bson.M{
		"_id":           eventID,
		"registrations": activeEntry(userID),
	}
}

// RemoveRegistration hard-deletes the user's active roster entry.
func (r *EventRepository) RemoveRegistration(ctx context.Context, eventID, userID primitive.ObjectID) error {
	update := bson.M{
		"$pull": bson.M{"registrations": bson.M{
			"user":   userID,
			"status": bson.M{"$ne": models.RegistrationStatusCancelled},
		}},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, removeRegistrationFilter(eventID, userID), update)
	if err != nil {
		return err
	}
	if result.MatchedCount > 0 {
		return nil
	}

	if _, err := r.FindByID(ctx, eventID); err != nil {
		return err
	}
	return repositories.ErrNotRegistered
}

// UpdateRegistration sets attendance and payment status on the user's entry.
func (r *EventRepository) UpdateRegistration(ctx context.Context, eventID, userID primitive.ObjectID, status, paymentStatus string) error {
	filter := bson.M{"_id": eventID, "registrations.user": userID}
	update := bson.M{"$set": bson.M{
		"registrations.$.status":        status,
		"registrations.$.paymentStatus": paymentStatus,
		"updatedAt":                     time.Now(),
	}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		if _, err := r.FindByID(ctx, eventID); err != nil {
			return err
		}
		return repositories.ErrNotRegistered
	}
	return nil
}
