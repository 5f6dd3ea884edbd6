package services

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ppsociety/membership-backend/internal/models"
	"github.com/ppsociety/membership-backend/internal/repositories"
)

// stubUserRepo is a test-only in-memory implementation of
// repositories.UserRepository.
type stubUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newStubUserRepo(users ...*models.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[primitive.ObjectID]*models.User)}
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		r.users[u.ID] = u
	}
	return r
}

func (r *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(user.Email)
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(email)
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *stubUserRepo) FindByVerificationToken(ctx context.Context, token string) (*models.User, error) {
	for _, u := range r.users {
		if u.VerificationToken == token && token != "" {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *stubUserRepo) FindByResetToken(ctx context.Context, token string) (*models.User, error) {
	for _, u := range r.users {
		if u.ResetPasswordToken == token && token != "" {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *stubUserRepo) FindManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.User, error) {
	var out []*models.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) FindAll(ctx context.Context, page, limit int) ([]*models.User, int64, error) {
	var out []*models.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (r *stubUserRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := r.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// stubEventRepo is a test-only in-memory implementation of
// repositories.EventRepository. TryRegister mirrors the conditional-write
// semantics of the MongoDB implementation.
type stubEventRepo struct {
	events map[primitive.ObjectID]*models.Event
}

func newStubEventRepo(events ...*models.Event) *stubEventRepo {
	r := &stubEventRepo{events: make(map[primitive.ObjectID]*models.Event)}
	for _, e := range events {
		if e.ID.IsZero() {
			e.ID = primitive.NewObjectID()
		}
		r.events[e.ID] = e
	}
	return r
}

func (r *stubEventRepo) Create(ctx context.Context, event *models.Event) error {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	r.events[event.ID] = event
	return nil
}

func (r *stubEventRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return e, nil
}

func (r *stubEventRepo) Find(ctx context.Context, filter repositories.EventFilter, page, limit int) ([]*models.Event, int64, error) {
	var out []*models.Event
	for _, e := range r.events {
		if filter.Status != "" && string(e.Status) != filter.Status {
			continue
		}
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		if filter.EventType != "" && e.EventType != filter.EventType {
			continue
		}
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

func (r *stubEventRepo) Update(ctx context.Context, event *models.Event) error {
	if _, ok := r.events[event.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.events[event.ID] = event
	return nil
}

func (r *stubEventRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := r.events[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *stubEventRepo) TryRegister(ctx context.Context, eventID primitive.ObjectID, reg models.Registration) error {
	event, ok := r.events[eventID]
	if !ok {
		return repositories.ErrNotFound
	}
	if event.ActiveRegistration(reg.User) != nil {
		return repositories.ErrAlreadyRegistered
	}
	if !event.IsRegistrationOpen() {
		return repositories.ErrRegistrationClosed
	}
	event.Registrations = append(event.Registrations, reg)
	return nil
}

func (r *stubEventRepo) RemoveRegistration(ctx context.Context, eventID, userID primitive.ObjectID) error {
	event, ok := r.events[eventID]
	if !ok {
		return repositories.ErrNotFound
	}
	for i, reg := range event.Registrations {
		if reg.User == userID && reg.Status != models.RegistrationStatusCancelled {
			event.Registrations = append(event.Registrations[:i], event.Registrations[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotRegistered
}

func (r *stubEventRepo) UpdateRegistration(ctx context.Context, eventID, userID primitive.ObjectID, status, paymentStatus string) error {
	event, ok := r.events[eventID]
	if !ok {
		return repositories.ErrNotFound
	}
	for i := range event.Registrations {
		if event.Registrations[i].User == userID {
			event.Registrations[i].Status = status
			event.Registrations[i].PaymentStatus = paymentStatus
			return nil
		}
	}
	return repositories.ErrNotRegistered
}

// stubNewsRepo is a test-only in-memory implementation of
// repositories.NewsRepository.
type stubNewsRepo struct {
	articles map[primitive.ObjectID]*models.News
}

func newStubNewsRepo(articles ...*models.News) *stubNewsRepo {
	r := &stubNewsRepo{articles: make(map[primitive.ObjectID]*models.News)}
	for _, a := range articles {
		if a.ID.IsZero() {
			a.ID = primitive.NewObjectID()
		}
		r.articles[a.ID] = a
	}
	return r
}

func (r *stubNewsRepo) Create(ctx context.Context, news *models.News) error {
	if news.ID.IsZero() {
		news.ID = primitive.NewObjectID()
	}
	r.articles[news.ID] = news
	return nil
}

func (r *stubNewsRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.News, error) {
	a, ok := r.articles[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return a, nil
}

func (r *stubNewsRepo) Find(ctx context.Context, filter repositories.NewsFilter, page, limit int) ([]*models.News, int64, error) {
	var out []*models.News
	for _, a := range r.articles {
		if filter.Status != "" && string(a.Status) != filter.Status {
			continue
		}
		if filter.Category != "" && a.Category != filter.Category {
			continue
		}
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

func (r *stubNewsRepo) Update(ctx context.Context, news *models.News) error {
	if _, ok := r.articles[news.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.articles[news.ID] = news
	return nil
}

func (r *stubNewsRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := r.articles[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.articles, id)
	return nil
}

func (r *stubNewsRepo) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	a, ok := r.articles[id]
	if !ok {
		return repositories.ErrNotFound
	}
	a.Views++
	return nil
}

func (r *stubNewsRepo) AddLike(ctx context.Context, id primitive.ObjectID, like models.Like) (bool, error) {
	a, ok := r.articles[id]
	if !ok {
		return false, repositories.ErrNotFound
	}
	if a.LikedBy(like.User) {
		return false, nil
	}
	a.Likes = append(a.Likes, like)
	return true, nil
}

func (r *stubNewsRepo) RemoveLike(ctx context.Context, id, userID primitive.ObjectID) (bool, error) {
	a, ok := r.articles[id]
	if !ok {
		return false, repositories.ErrNotFound
	}
	for i, like := range a.Likes {
		if like.User == userID {
			a.Likes = append(a.Likes[:i], a.Likes[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *stubNewsRepo) AddComment(ctx context.Context, id primitive.ObjectID, comment models.Comment) error {
	a, ok := r.articles[id]
	if !ok {
		return repositories.ErrNotFound
	}
	a.Comments = append(a.Comments, comment)
	return nil
}

// stubSubscriptionRepo is a test-only in-memory implementation of
// repositories.SubscriptionRepository with the unique-email semantics of the
// MongoDB implementation.
type stubSubscriptionRepo struct {
	subs map[primitive.ObjectID]*models.Subscription
}

func newStubSubscriptionRepo(subs ...*models.Subscription) *stubSubscriptionRepo {
	r := &stubSubscriptionRepo{subs: make(map[primitive.ObjectID]*models.Subscription)}
	for _, s := range subs {
		if s.ID.IsZero() {
			s.ID = primitive.NewObjectID()
		}
		r.subs[s.ID] = s
	}
	return r
}

func (r *stubSubscriptionRepo) Create(ctx context.Context, sub *models.Subscription) error {
	for _, s := range r.subs {
		if s.Email == sub.Email {
			return repositories.ErrDuplicate
		}
	}
	if sub.ID.IsZero() {
		sub.ID = primitive.NewObjectID()
	}
	r.subs[sub.ID] = sub
	return nil
}

func (r *stubSubscriptionRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Subscription, error) {
	s, ok := r.subs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return s, nil
}

func (r *stubSubscriptionRepo) FindByEmail(ctx context.Context, email string) (*models.Subscription, error) {
	for _, s := range r.subs {
		if s.Email == email {
			return s, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *stubSubscriptionRepo) FindByStatus(ctx context.Context, status models.SubscriptionStatus, page, limit int) ([]*models.Subscription, int64, error) {
	var out []*models.Subscription
	for _, s := range r.subs {
		if s.Status == status {
			out = append(out, s)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubSubscriptionRepo) Update(ctx context.Context, sub *models.Subscription) error {
	if _, ok := r.subs[sub.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.subs[sub.ID] = sub
	return nil
}

// Compile-time interface checks for the stubs.
var (
	_ repositories.UserRepository         = (*stubUserRepo)(nil)
	_ repositories.EventRepository        = (*stubEventRepo)(nil)
	_ repositories.NewsRepository         = (*stubNewsRepo)(nil)
	_ repositories.SubscriptionRepository = (*stubSubscriptionRepo)(nil)
)
