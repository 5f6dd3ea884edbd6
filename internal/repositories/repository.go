package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ppsociety/membership-backend/internal/models"
)

// Sentinel errors returned by repository implementations. Services translate
// these into the API error taxonomy.
var (
	ErrNotFound           = errors.New("record not found")
	ErrDuplicate          = errors.New("duplicate record")
	ErrAlreadyRegistered  = errors.New("user already registered for event")
	ErrRegistrationClosed = errors.New("registration is not open")
	ErrNotRegistered      = errors.New("user not registered for event")
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByVerificationToken(ctx context.Context, token string) (*models.User, error)
	FindByResetToken(ctx context.Context, token string) (*models.User, error)
	FindManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.User, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.User, int64, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// EventFilter narrows event list queries
type EventFilter struct {
	Status    string
	Category  string
	EventType string
	Upcoming  bool
}

// EventRepository defines the interface for event data operations
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error)
	Find(ctx context.Context, filter EventFilter, page, limit int) ([]*models.Event, int64, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// TryRegister appends a roster entry as one conditional write: it succeeds
	// only if the event is published, the deadline has not passed, capacity is
	// not exhausted and the user has no active entry. Returns
	// ErrAlreadyRegistered, ErrRegistrationClosed or ErrNotFound otherwise.
	TryRegister(ctx context.Context, eventID primitive.ObjectID, reg models.Registration) error

	// RemoveRegistration deletes the user's active roster entry. Returns
	// ErrNotRegistered when no active entry exists, ErrNotFound when the
	// event is absent.
	RemoveRegistration(ctx context.Context, eventID, userID primitive.ObjectID) error

	// UpdateRegistration sets attendance and payment status on the user's
	// roster entry.
	UpdateRegistration(ctx context.Context, eventID, userID primitive.ObjectID, status, paymentStatus string) error
}

// NewsFilter narrows news list queries
type NewsFilter struct {
	Status   string
	Category string
	Search   string
}

// NewsRepository defines the interface for news data operations
type NewsRepository interface {
	Create(ctx context.Context, news *models.News) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.News, error)
	Find(ctx context.Context, filter NewsFilter, page, limit int) ([]*models.News, int64, error)
	Update(ctx context.Context, news *models.News) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// IncrementViews bumps the view counter by one.
	IncrementViews(ctx context.Context, id primitive.ObjectID) error

	// AddLike inserts a like unless one already exists for the user; the
	// boolean reports whether a like was added.
	AddLike(ctx context.Context, id primitive.ObjectID, like models.Like) (bool, error)

	// RemoveLike deletes the user's like; the boolean reports whether one
	// was removed.
	RemoveLike(ctx context.Context, id, userID primitive.ObjectID) (bool, error)

	// AddComment appends a comment to the article's comment log.
	AddComment(ctx context.Context, id primitive.ObjectID, comment models.Comment) error
}

// SubscriptionRepository defines the interface for subscription data operations
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *models.Subscription) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Subscription, error)
	FindByEmail(ctx context.Context, email string) (*models.Subscription, error)
	FindByStatus(ctx context.Context, status models.SubscriptionStatus, page, limit int) ([]*models.Subscription, int64, error)
	Update(ctx context.Context, sub *models.Subscription) error
}
