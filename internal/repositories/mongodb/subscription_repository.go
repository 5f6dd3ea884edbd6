package mongodb

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ppsociety/membership-backend/internal/models"
	"github.com/ppsociety/membership-backend/internal/repositories"
)

// Compile-time check to ensure SubscriptionRepository implements the interface
var _ repositories.SubscriptionRepository = (*SubscriptionRepository)(nil)

// SubscriptionRepository handles MongoDB operations for Subscription
type SubscriptionRepository struct {
	collection *mongo.Collection
}

// NewSubscriptionRepository creates a new SubscriptionRepository
func NewSubscriptionRepository(db *mongo.Database) *SubscriptionRepository {
	return &SubscriptionRepository{
		collection: db.Collection("subscriptions"),
	}
}

// EnsureIndexes creates the indexes the subscription collection relies on.
// The unique email index is what makes "at most one record per email" hold
// under concurrent subscribes.
func (r *SubscriptionRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("subscriptions_email_unique"),
		},
		{Keys: bson.D{{Key: "status", Value: 1}}, Options: options.Index().SetName("subscriptions_status")},
	})
	return err
}

// Create inserts a new subscription
func (r *SubscriptionRepository) Create(ctx context.Context, sub *models.Subscription) error {
	sub.ID = primitive.NewObjectID()
	sub.Email = strings.ToLower(sub.Email)
	sub.CreatedAt = time.Now()
	sub.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, sub)
	if mongo.IsDuplicateKeyError(err) {
		return repositories.ErrDuplicate
	}
	return err
}

// FindByID finds a subscription by ID
func (r *SubscriptionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&sub)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// FindByEmail finds a subscription by email, case-insensitively
func (r *SubscriptionRepository) FindByEmail(ctx context.Context, email string) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.collection.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&sub)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// FindByStatus retrieves subscriptions in a state with pagination, newest first
func (r *SubscriptionRepository) FindByStatus(ctx context.Context, status models.SubscriptionStatus, page, limit int) ([]*models.Subscription, int64, error) {
	query := bson.M{"status": status}

	findOpts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, query, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var subs []*models.Subscription
	if err = cursor.All(ctx, &subs); err != nil {
		return nil, 0, err
	}
	if subs == nil {
		subs = []*models.Subscription{}
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

// Update updates an existing subscription. Cleared token and timestamp
// fields are unset rather than written as zero values.
func (r *SubscriptionRepository) Update(ctx context.Context, sub *models.Subscription) error {
	sub.UpdatedAt = time.Now()
	update := bson.M{"$set": sub}
	unset := bson.M{}
	if sub.UnsubscribeToken == "" {
		unset["unsubscribeToken"] = ""
	}
	if sub.UnsubscribedAt == nil {
		unset["unsubscribedAt"] = ""
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": sub.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
