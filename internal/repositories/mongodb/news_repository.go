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

// Compile-time check to ensure NewsRepository implements the interface
var _ repositories.NewsRepository = (*NewsRepository)(nil)

// NewsRepository handles MongoDB operations for News
type NewsRepository struct {
	collection *mongo.Collection
}

// NewNewsRepository creates a new NewsRepository
func NewNewsRepository(db *mongo.Database) *NewsRepository {
	return &NewsRepository{
		collection: db.Collection("news"),
	}
}

// EnsureIndexes creates the indexes the news collection relies on,
// including the text index backing list search.
func (r *NewsRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "title", Value: "text"},
				{Key: "excerpt", Value: "text"},
				{Key: "content", Value: "text"},
			},
			Options: options.Index().SetName("news_text"),
		},
		{Keys: bson.D{{Key: "category", Value: 1}}, Options: options.Index().SetName("news_category")},
		{Keys: bson.D{{Key: "status", Value: 1}}, Options: options.Index().SetName("news_status")},
		{Keys: bson.D{{Key: "publishedAt", Value: -1}}, Options: options.Index().SetName("news_published_at")},
		{Keys: bson.D{{Key: "author", Value: 1}}, Options: options.Index().SetName("news_author")},
	})
	return err
}

// Create inserts a new article
func (r *NewsRepository) Create(ctx context.Context, news *models.News) error {
	news.ID = primitive.NewObjectID()
	news.CreatedAt = time.Now()
	news.UpdatedAt = time.Now()
	if news.Likes == nil {
		news.Likes = []models.Like{}
	}
	if news.Comments == nil {
		news.Comments = []models.Comment{}
	}
	_, err := r.collection.InsertOne(ctx, news)
	return err
}

// FindByID finds an article by ID
func (r *NewsRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.News, error) {
	var news models.News
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&news)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &news, nil
}

// Find retrieves articles matching the filter with pagination, newest
// published first
func (r *NewsRepository) Find(ctx context.Context, filter repositories.NewsFilter, page, limit int) ([]*models.News, int64, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Search != "" {
		query["$text"] = bson.M{"$search": filter.Search}
	}

	findOpts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "publishedAt", Value: -1}, {Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, query, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var news []*models.News
	if err = cursor.All(ctx, &news); err != nil {
		return nil, 0, err
	}
	if news == nil {
		news = []*models.News{}
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return news, total, nil
}

// Update updates an existing article
func (r *NewsRepository) Update(ctx context.Context, news *models.News) error {
	news.UpdatedAt = time.Now()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": news.ID}, bson.M{"$set": news})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Delete deletes an article by ID
func (r *NewsRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// IncrementViews bumps the view counter by one. Every fetch counts; there is
// no viewer deduplication.
func (r *NewsRepository) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// AddLike inserts a like unless the user already has one. The filter guards
// uniqueness so concurrent toggles cannot produce duplicate entries.
func (r *NewsRepository) AddLike(ctx context.Context, id primitive.ObjectID, like models.Like) (bool, error) {
	filter := bson.M{
		"_id":        id,
		"likes.user": bson.M{"$ne": like.User},
	}
	update := bson.M{
		"$push": bson.M{"likes": like},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	if result.MatchedCount == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return false, err
		}
		return false, nil // already liked
	}
	return true, nil
}

// removeLikeFilter matches the article only when the user's like exists.
// Mirrors AddLike: classification lives in the filter, since the $set on
// updatedAt would count as a modification even when the $pull is a no-op.
func removeLikeFilter(id, userID primitive.ObjectID) bson.M {
	return bson.M{
		"_id":        id,
		"likes.user": userID,
	}
}

// RemoveLike deletes the user's like if present.
func (r *NewsRepository) RemoveLike(ctx context.Context, id, userID primitive.ObjectID) (bool, error) {
	update := bson.M{
		"$pull": bson.M{"likes": bson.M{"user": userID}},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, removeLikeFilter(id, userID), update)
	if err != nil {
		return false, err
	}
	if result.MatchedCount > 0 {
		return true, nil
	}

	if _, err := r.FindByID(ctx, id); err != nil {
		return false, err
	}
	return false, nil // not liked
}

// AddComment appends a comment to the article's comment log.
func (r *NewsRepository) AddComment(ctx context.Context, id primitive.ObjectID, comment models.Comment) error {
	update := bson.M{
		"$push": bson.M{"comments": comment},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
