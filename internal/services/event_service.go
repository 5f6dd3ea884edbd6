package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ppsociety/membership-backend/internal/apperrors"
	"github.com/ppsociety/membership-backend/internal/models"
	"github.com/ppsociety/membership-backend/internal/repositories"
)

// EventService handles event and registration business logic
type EventService struct {
	eventRepo repositories.EventRepository
	userRepo  repositories.UserRepository
}

// NewEventService creates a new EventService
func NewEventService(eventRepo repositories.EventRepository, userRepo repositories.UserRepository) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		userRepo:  userRepo,
	}
}

// List retrieves events matching the filter with organizer identities
// resolved. Roster entries are omitted from list views.
func (s *EventService) List(ctx context.Context, filter repositories.EventFilter, page, limit int) ([]*models.EventView, models.Pagination, error) {
	events, total, err := s.eventRepo.Find(ctx, filter, page, limit)
	if err != nil {
		return nil, models.Pagination{}, apperrors.Internal(err)
	}

	organizerIDs := make([]primitive.ObjectID, 0, len(events))
	for _, event := range events {
		organizerIDs = append(organizerIDs, event.Organizer)
	}
	refs, err := s.userRefs(ctx, organizerIDs)
	if err != nil {
		return nil, models.Pagination{}, apperrors.Internal(err)
	}

	views := make([]*models.EventView, 0, len(events))
	for _, event := range events {
		view := s.eventView(event, refs)
		view.Registrations = nil
		views = append(views, view)
	}
	return views, models.NewPagination(page, limit, total), nil
}

// Get retrieves one event with organizer and registrant identities resolved.
func (s *EventService) Get(ctx context.Context, id primitive.ObjectID) (*models.EventView, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translate(err, "Event not found")
	}

	ids := []primitive.ObjectID{event.Organizer}
	for _, reg := range event.Registrations {
		ids = append(ids, reg.User)
	}
	refs, err := s.userRefs(ctx, ids)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return s.eventView(event, refs), nil
}

// Create creates an event owned by the caller. Status defaults to draft.
func (s *EventService) Create(ctx context.Context, organizerID primitive.ObjectID, req *models.CreateEventRequest) (*models.EventView, error) {
	event := models.NewEvent()
	event.Title = req.Title
	event.Description = req.Description
	event.Content = req.Content
	event.Date = req.Date
	event.Time = req.Time
	event.EndDate = req.EndDate
	event.EndTime = req.EndTime
	event.Location = req.Location
	event.Venue = req.Venue
	event.Organizer = organizerID
	event.Speakers = req.Speakers
	event.MaxAttendees = req.MaxAttendees
	event.RegistrationDeadline = req.RegistrationDeadline
	event.RegistrationFee = req.RegistrationFee
	event.FeaturedImage = req.FeaturedImage
	event.Tags = req.Tags
	event.IsVirtual = req.IsVirtual
	event.VirtualLink = req.VirtualLink
	event.VirtualPlatform = req.VirtualPlatform

	if req.EventType != "" {
		if !models.ValidEventType(req.EventType) {
			return nil, apperrors.Validation("Validation failed", "Invalid event type")
		}
		event.EventType = req.EventType
	}
	if req.Category != "" {
		if !models.ValidEventCategory(req.Category) {
			return nil, apperrors.Validation("Validation failed", "Invalid category")
		}
		event.Category = req.Category
	}
	if req.Currency != "" {
		event.Currency = req.Currency
	}
	if req.Status != "" {
		if !validEventStatus(req.Status) {
			return nil, apperrors.Validation("Validation failed", "Invalid status")
		}
		event.Status = models.EventStatus(req.Status)
	}
	if req.MaxAttendees != nil && *req.MaxAttendees < 1 {
		return nil, apperrors.Validation("Validation failed", "Maximum attendees must be at least 1")
	}
	if req.RegistrationFee < 0 {
		return nil, apperrors.Validation("Validation failed", "Registration fee cannot be negative")
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, apperrors.Internal(err)
	}

	refs, err := s.userRefs(ctx, []primitive.ObjectID{organizerID})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return s.eventView(event, refs), nil
}

// Update applies a partial update after checking ownership.
func (s *EventService) Update(ctx context.Context, actorID primitive.ObjectID, actorRole string, id primitive.ObjectID, req *models.UpdateEventRequest) (*models.EventView, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translate(err, "Event not found")
	}
	if !models.CanMutate(actorID, actorRole, event.Organizer) {
		return nil, apperrors.Forbidden("Not authorized to update this event")
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Content != nil {
		event.Content = *req.Content
	}
	if req.Date != nil {
		event.Date = *req.Date
	}
	if req.Time != nil {
		event.Time = *req.Time
	}
	if req.EndDate != nil {
		event.EndDate = req.EndDate
	}
	if req.EndTime != nil {
		event.EndTime = *req.EndTime
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Venue != nil {
		event.Venue = req.Venue
	}
	if req.EventType != nil {
		if !models.ValidEventType(*req.EventType) {
			return nil, apperrors.Validation("Validation failed", "Invalid event type")
		}
		event.EventType = *req.EventType
	}
	if req.Category != nil {
		if !models.ValidEventCategory(*req.Category) {
			return nil, apperrors.Validation("Validation failed", "Invalid category")
		}
		event.Category = *req.Category
	}
	if req.Speakers != nil {
		event.Speakers = req.Speakers
	}
	if req.MaxAttendees != nil {
		if *req.MaxAttendees < 1 {
			return nil, apperrors.Validation("Validation failed", "Maximum attendees must be at least 1")
		}
		event.MaxAttendees = req.MaxAttendees
	}
	if req.RegistrationDeadline != nil {
		event.RegistrationDeadline = req.RegistrationDeadline
	}
	if req.RegistrationFee != nil {
		if *req.RegistrationFee < 0 {
			return nil, apperrors.Validation("Validation failed", "Registration fee cannot be negative")
		}
		event.RegistrationFee = *req.RegistrationFee
	}
	if req.Currency != nil {
		event.Currency = *req.Currency
	}
	if req.Status != nil {
		if !validEventStatus(*req.Status) {
			return nil, apperrors.Validation("Validation failed", "Invalid status")
		}
		event.Status = models.EventStatus(*req.Status)
	}
	if req.FeaturedImage != nil {
		event.FeaturedImage = *req.FeaturedImage
	}
	if req.Tags != nil {
		event.Tags = req.Tags
	}
	if req.IsVirtual != nil {
		event.IsVirtual = *req.IsVirtual
	}
	if req.VirtualLink != nil {
		event.VirtualLink = *req.VirtualLink
	}
	if req.VirtualPlatform != nil {
		event.VirtualPlatform = *req.VirtualPlatform
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, s.translate(err, "Event not found")
	}

	refs, err := s.userRefs(ctx, []primitive.ObjectID{event.Organizer})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return s.eventView(event, refs), nil
}

// Delete deletes an event after checking ownership.
func (s *EventService) Delete(ctx context.Context, actorID primitive.ObjectID, actorRole string, id primitive.ObjectID) error {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return s.translate(err, "Event not found")
	}
	if !models.CanMutate(actorID, actorRole, event.Organizer) {
		return apperrors.Forbidden("Not authorized to delete this event")
	}
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return s.translate(err, "Event not found")
	}
	return nil
}

// Register joins the caller onto the roster. The payment status is "paid"
// for free events and "pending" otherwise. The append is atomic with the
// capacity and deadline checks.
func (s *EventService) Register(ctx context.Context, eventID, userID primitive.ObjectID) (*models.RegistrationResult, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, s.translate(err, "Event not found")
	}

	paymentStatus := models.PaymentStatusPending
	if event.RegistrationFee == 0 {
		paymentStatus = models.PaymentStatusPaid
	}
	reg := models.Registration{
		User:          userID,
		RegisteredAt:  time.Now(),
		Status:        models.RegistrationStatusRegistered,
		PaymentStatus: paymentStatus,
	}

	if err := s.eventRepo.TryRegister(ctx, eventID, reg); err != nil {
		switch {
		case errors.Is(err, repositories.ErrAlreadyRegistered):
			return nil, apperrors.Conflict("You are already registered for this event")
		case errors.Is(err, repositories.ErrRegistrationClosed):
			return nil, apperrors.Validation("Registration is not open for this event")
		default:
			return nil, s.translate(err, "Event not found")
		}
	}

	return s.registrationResult(ctx, eventID)
}

// CancelRegistration removes the caller's roster entry.
func (s *EventService) CancelRegistration(ctx context.Context, eventID, userID primitive.ObjectID) (*models.RegistrationResult, error) {
	if err := s.eventRepo.RemoveRegistration(ctx, eventID, userID); err != nil {
		if errors.Is(err, repositories.ErrNotRegistered) {
			return nil, apperrors.NotFound("You are not registered for this event")
		}
		return nil, s.translate(err, "Event not found")
	}
	return s.registrationResult(ctx, eventID)
}

// UpdateAttendance sets attendance and payment status on a roster entry.
// Only the organizer or an admin may do this.
func (s *EventService) UpdateAttendance(ctx context.Context, actorID primitive.ObjectID, actorRole string, eventID, userID primitive.ObjectID, req *models.UpdateAttendanceRequest) error {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return s.translate(err, "Event not found")
	}
	if !models.CanMutate(actorID, actorRole, event.Organizer) {
		return apperrors.Forbidden("Not authorized to manage registrations for this event")
	}

	if req.Status != models.RegistrationStatusRegistered &&
		req.Status != models.RegistrationStatusAttended &&
		req.Status != models.RegistrationStatusCancelled {
		return apperrors.Validation("Validation failed", "Invalid registration status")
	}
	if req.PaymentStatus != models.PaymentStatusPending &&
		req.PaymentStatus != models.PaymentStatusPaid &&
		req.PaymentStatus != models.PaymentStatusRefunded {
		return apperrors.Validation("Validation failed", "Invalid payment status")
	}

	if err := s.eventRepo.UpdateRegistration(ctx, eventID, userID, req.Status, req.PaymentStatus); err != nil {
		if errors.Is(err, repositories.ErrNotRegistered) {
			return apperrors.NotFound("Registration not found")
		}
		return s.translate(err, "Event not found")
	}
	return nil
}

func (s *EventService) registrationResult(ctx context.Context, eventID primitive.ObjectID) (*models.RegistrationResult, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, s.translate(err, "Event not found")
	}
	return &models.RegistrationResult{
		RegistrationCount: event.RegistrationCount(),
		AvailableSpots:    event.AvailableSpots(),
	}, nil
}

func (s *EventService) eventView(event *models.Event, refs map[primitive.ObjectID]models.UserRef) *models.EventView {
	view := &models.EventView{
		Event:              event,
		Organizer:          refs[event.Organizer],
		RegistrationCount:  event.RegistrationCount(),
		AvailableSpots:     event.AvailableSpots(),
		IsRegistrationOpen: event.IsRegistrationOpen(),
	}
	for _, reg := range event.Registrations {
		view.Registrations = append(view.Registrations, models.RegistrationView{
			Registration: reg,
			User:         refs[reg.User],
		})
	}
	return view
}

func (s *EventService) userRefs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserRef, error) {
	users, err := s.userRepo.FindManyByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	refs := make(map[primitive.ObjectID]models.UserRef, len(users))
	for _, user := range users {
		refs[user.ID] = user.Ref()
	}
	return refs, nil
}

func (s *EventService) translate(err error, notFoundMsg string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperrors.NotFound(notFoundMsg)
	}
	return apperrors.Internal(err)
}

func validEventStatus(status string) bool {
	switch models.EventStatus(status) {
	case models.EventStatusDraft, models.EventStatusPublished, models.EventStatusCancelled, models.EventStatusCompleted:
		return true
	}
	return false
}
