package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewsStatus is the lifecycle state of a news article
type NewsStatus string

const (
	NewsStatusDraft     NewsStatus = "draft"
	NewsStatusPublished NewsStatus = "published"
	NewsStatusArchived  NewsStatus = "archived"
)

// MaxCommentLength is the longest accepted comment body.
const MaxCommentLength = 1000

// NewsCategories lists the accepted news category values
var NewsCategories = []string{"Research", "Event", "Industry", "Technology", "Health", "Nutrition", "Other"}

// Like is a user's like on an article, at most one per user
type Like struct {
	User      primitive.ObjectID `bson:"user" json:"user"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Comment is an entry in an article's append-only comment log
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// News represents a published content item with embedded likes and comments
type News struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title         string             `bson:"title" json:"title"`
	Excerpt       string             `bson:"excerpt" json:"excerpt"`
	Content       string             `bson:"content" json:"content"`
	Category      string             `bson:"category" json:"category"`
	Author        primitive.ObjectID `bson:"author" json:"author"`
	FeaturedImage string             `bson:"featuredImage,omitempty" json:"featuredImage,omitempty"`
	Tags          []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Status        NewsStatus         `bson:"status" json:"status"`
	PublishedAt   *time.Time         `bson:"publishedAt,omitempty" json:"publishedAt,omitempty"`
	Views         int64              `bson:"views" json:"views"`
	Likes         []Like             `bson:"likes" json:"likes"`
	Comments      []Comment          `bson:"comments" json:"comments"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewNews creates a News article with default values
func NewNews() *News {
	now := time.Now()
	return &News{
		Category:  "Other",
		Status:    NewsStatusDraft,
		Likes:     []Like{},
		Comments:  []Comment{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// LikeCount is the size of the like set.
func (n *News) LikeCount() int { return len(n.Likes) }

// CommentCount is the size of the comment log.
func (n *News) CommentCount() int { return len(n.Comments) }

// LikedBy reports whether userID has an entry in the like set.
func (n *News) LikedBy(userID primitive.ObjectID) bool {
	for _, like := range n.Likes {
		if like.User == userID {
			return true
		}
	}
	return false
}

// ValidNewsCategory reports whether c is an accepted news category.
func ValidNewsCategory(c string) bool {
	for _, v := range NewsCategories {
		if v == c {
			return true
		}
	}
	return false
}
