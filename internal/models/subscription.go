package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubscriptionStatus is the state of a newsletter subscription
type SubscriptionStatus string

const (
	SubscriptionStatusActive       SubscriptionStatus = "active"
	SubscriptionStatusUnsubscribed SubscriptionStatus = "unsubscribed"
)

// SubscriptionSources lists the accepted subscription source values
var SubscriptionSources = []string{"website", "event", "referral", "social", "other"}

// SubscriptionPreferences holds the per-list opt-in flags
type SubscriptionPreferences struct {
	Newsletter         bool `bson:"newsletter" json:"newsletter"`
	EventNotifications bool `bson:"eventNotifications" json:"eventNotifications"`
	ResearchUpdates    bool `bson:"researchUpdates" json:"researchUpdates"`
}

// Subscription represents a newsletter opt-in record, at most one per email
type Subscription struct {
	ID               primitive.ObjectID      `bson:"_id,omitempty" json:"id,omitempty"`
	Email            string                  `bson:"email" json:"email"`
	Status           SubscriptionStatus      `bson:"status" json:"status"`
	Preferences      SubscriptionPreferences `bson:"preferences" json:"preferences"`
	Source           string                  `bson:"source" json:"source"`
	UnsubscribeToken string                  `bson:"unsubscribeToken,omitempty" json:"-"`
	UnsubscribedAt   *time.Time              `bson:"unsubscribedAt,omitempty" json:"unsubscribedAt,omitempty"`
	CreatedAt        time.Time               `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time               `bson:"updatedAt" json:"updatedAt"`
}

// NewSubscription creates an active Subscription with default preferences
func NewSubscription(email, source string) *Subscription {
	now := time.Now()
	return &Subscription{
		Email:  email,
		Status: SubscriptionStatusActive,
		Preferences: SubscriptionPreferences{
			Newsletter:         true,
			EventNotifications: true,
			ResearchUpdates:    true,
		},
		Source:    source,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ValidSubscriptionSource reports whether s is an accepted source value.
func ValidSubscriptionSource(s string) bool {
	for _, v := range SubscriptionSources {
		if v == s {
			return true
		}
	}
	return false
}
