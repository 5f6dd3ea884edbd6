package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventStatus is the lifecycle state of an event
type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusPublished EventStatus = "published"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusCompleted EventStatus = "completed"
)

// Registration statuses
const (
	RegistrationStatusRegistered = "registered"
	RegistrationStatusAttended   = "attended"
	RegistrationStatusCancelled  = "cancelled"
)

// Payment statuses
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

// EventTypes lists the accepted event type values
var EventTypes = []string{"workshop", "seminar", "conference", "webinar", "training", "networking", "other"}

// EventCategories lists the accepted event category values
var EventCategories = []string{"Health", "Nutrition", "Technology", "Business", "Research", "Training", "Other"}

// Registration is a roster entry embedded in an event
type Registration struct {
	User          primitive.ObjectID `bson:"user" json:"user"`
	RegisteredAt  time.Time          `bson:"registeredAt" json:"registeredAt"`
	Status        string             `bson:"status" json:"status"`
	PaymentStatus string             `bson:"paymentStatus" json:"paymentStatus"`
}

// Venue describes the physical venue of an event
type Venue struct {
	Name    string  `bson:"name,omitempty" json:"name,omitempty"`
	Street  string  `bson:"street,omitempty" json:"street,omitempty"`
	City    string  `bson:"city,omitempty" json:"city,omitempty"`
	State   string  `bson:"state,omitempty" json:"state,omitempty"`
	Country string  `bson:"country,omitempty" json:"country,omitempty"`
	ZipCode string  `bson:"zipCode,omitempty" json:"zipCode,omitempty"`
	Lat     float64 `bson:"lat,omitempty" json:"lat,omitempty"`
	Lng     float64 `bson:"lng,omitempty" json:"lng,omitempty"`
}

// Speaker is a listed event speaker
type Speaker struct {
	Name         string `bson:"name" json:"name"`
	Title        string `bson:"title,omitempty" json:"title,omitempty"`
	Organization string `bson:"organization,omitempty" json:"organization,omitempty"`
	Bio          string `bson:"bio,omitempty" json:"bio,omitempty"`
	Image        string `bson:"image,omitempty" json:"image,omitempty"`
}

// Event represents a schedulable activity with an embedded registration roster
type Event struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title                string             `bson:"title" json:"title"`
	Description          string             `bson:"description" json:"description"`
	Content              string             `bson:"content,omitempty" json:"content,omitempty"`
	Date                 time.Time          `bson:"date" json:"date"`
	Time                 string             `bson:"time" json:"time"`
	EndDate              *time.Time         `bson:"endDate,omitempty" json:"endDate,omitempty"`
	EndTime              string             `bson:"endTime,omitempty" json:"endTime,omitempty"`
	Location             string             `bson:"location" json:"location"`
	Venue                *Venue             `bson:"venue,omitempty" json:"venue,omitempty"`
	EventType            string             `bson:"eventType" json:"eventType"`
	Category             string             `bson:"category" json:"category"`
	Organizer            primitive.ObjectID `bson:"organizer" json:"organizer"`
	Speakers             []Speaker          `bson:"speakers,omitempty" json:"speakers,omitempty"`
	MaxAttendees         *int               `bson:"maxAttendees,omitempty" json:"maxAttendees,omitempty"`
	RegistrationDeadline *time.Time         `bson:"registrationDeadline,omitempty" json:"registrationDeadline,omitempty"`
	RegistrationFee      float64            `bson:"registrationFee" json:"registrationFee"`
	Currency             string             `bson:"currency" json:"currency"`
	Status               EventStatus        `bson:"status" json:"status"`
	FeaturedImage        string             `bson:"featuredImage,omitempty" json:"featuredImage,omitempty"`
	Tags                 []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Registrations        []Registration     `bson:"registrations" json:"registrations"`
	IsVirtual            bool               `bson:"isVirtual" json:"isVirtual"`
	VirtualLink          string             `bson:"virtualLink,omitempty" json:"virtualLink,omitempty"`
	VirtualPlatform      string             `bson:"virtualPlatform,omitempty" json:"virtualPlatform,omitempty"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewEvent creates an Event with default values
func NewEvent() *Event {
	now := time.Now()
	return &Event{
		EventType:     "other",
		Category:      "Other",
		Currency:      "USD",
		Status:        EventStatusDraft,
		Registrations: []Registration{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// RegistrationCount is the number of roster entries with status "registered".
func (e *Event) RegistrationCount() int {
	count := 0
	for _, reg := range e.Registrations {
		if reg.Status == RegistrationStatusRegistered {
			count++
		}
	}
	return count
}

// AvailableSpots returns the remaining capacity, or nil when the event is
// unbounded.
func (e *Event) AvailableSpots() *int {
	if e.MaxAttendees == nil {
		return nil
	}
	spots := *e.MaxAttendees - e.RegistrationCount()
	return &spots
}

// IsRegistrationOpen reports whether the roster accepts new entries: the
// event is published, the deadline (if any) has not passed, and capacity
// (if any) is not exhausted.
func (e *Event) IsRegistrationOpen() bool {
	if e.Status != EventStatusPublished {
		return false
	}
	now := time.Now()
	if e.RegistrationDeadline != nil && now.After(*e.RegistrationDeadline) {
		return false
	}
	if e.MaxAttendees != nil && e.RegistrationCount() >= *e.MaxAttendees {
		return false
	}
	return true
}

// ActiveRegistration returns the roster entry for userID whose status is not
// "cancelled", or nil.
func (e *Event) ActiveRegistration(userID primitive.ObjectID) *Registration {
	for i := range e.Registrations {
		if e.Registrations[i].User == userID && e.Registrations[i].Status != RegistrationStatusCancelled {
			return &e.Registrations[i]
		}
	}
	return nil
}

// ValidEventType reports whether t is an accepted event type.
func ValidEventType(t string) bool {
	for _, v := range EventTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ValidEventCategory reports whether c is an accepted event category.
func ValidEventCategory(c string) bool {
	for _, v := range EventCategories {
		if v == c {
			return true
		}
	}
	return false
}
