package models

import "time"

// RegisterRequest defines the structure for member registration requests
type RegisterRequest struct {
	FirstName    string `json:"firstName" binding:"required"`
	LastName     string `json:"lastName" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	Organization string `json:"organization"`
	Phone        string `json:"phone"`
}

// LoginRequest defines the structure for login requests
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ForgotPasswordRequest defines the structure for password-reset initiation
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest defines the structure for password-reset completion
type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// ChangePasswordRequest defines the structure for password changes
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// UpdateProfileRequest defines the updatable profile fields
type UpdateProfileRequest struct {
	FirstName    *string `json:"firstName"`
	LastName     *string `json:"lastName"`
	Organization *string `json:"organization"`
	Phone        *string `json:"phone"`
}

// CreateEventRequest defines the structure for event creation
type CreateEventRequest struct {
	Title                string     `json:"title" binding:"required,max=200"`
	Description          string     `json:"description" binding:"required,max=1000"`
	Content              string     `json:"content"`
	Date                 time.Time  `json:"date" binding:"required"`
	Time                 string     `json:"time" binding:"required"`
	EndDate              *time.Time `json:"endDate"`
	EndTime              string     `json:"endTime"`
	Location             string     `json:"location" binding:"required"`
	Venue                *Venue     `json:"venue"`
	EventType            string     `json:"eventType"`
	Category             string     `json:"category"`
	Speakers             []Speaker  `json:"speakers"`
	MaxAttendees         *int       `json:"maxAttendees"`
	RegistrationDeadline *time.Time `json:"registrationDeadline"`
	RegistrationFee      float64    `json:"registrationFee"`
	Currency             string     `json:"currency"`
	Status               string     `json:"status"`
	FeaturedImage        string     `json:"featuredImage"`
	Tags                 []string   `json:"tags"`
	IsVirtual            bool       `json:"isVirtual"`
	VirtualLink          string     `json:"virtualLink"`
	VirtualPlatform      string     `json:"virtualPlatform"`
}

// UpdateEventRequest defines the updatable event fields; nil means unchanged
type UpdateEventRequest struct {
	Title                *string    `json:"title"`
	Description          *string    `json:"description"`
	Content              *string    `json:"content"`
	Date                 *time.Time `json:"date"`
	Time                 *string    `json:"time"`
	EndDate              *time.Time `json:"endDate"`
	EndTime              *string    `json:"endTime"`
	Location             *string    `json:"location"`
	Venue                *Venue     `json:"venue"`
	EventType            *string    `json:"eventType"`
	Category             *string    `json:"category"`
	Speakers             []Speaker  `json:"speakers"`
	MaxAttendees         *int       `json:"maxAttendees"`
	RegistrationDeadline *time.Time `json:"registrationDeadline"`
	RegistrationFee      *float64   `json:"registrationFee"`
	Currency             *string    `json:"currency"`
	Status               *string    `json:"status"`
	FeaturedImage        *string    `json:"featuredImage"`
	Tags                 []string   `json:"tags"`
	IsVirtual            *bool      `json:"isVirtual"`
	VirtualLink          *string    `json:"virtualLink"`
	VirtualPlatform      *string    `json:"virtualPlatform"`
}

// UpdateAttendanceRequest defines the organizer-side update of a roster entry
type UpdateAttendanceRequest struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
}

// CreateNewsRequest defines the structure for article creation
type CreateNewsRequest struct {
	Title         string   `json:"title" binding:"required,max=200"`
	Excerpt       string   `json:"excerpt" binding:"required,max=500"`
	Content       string   `json:"content" binding:"required"`
	Category      string   `json:"category" binding:"required"`
	FeaturedImage string   `json:"featuredImage"`
	Tags          []string `json:"tags"`
	Status        string   `json:"status"`
}

// UpdateNewsRequest defines the updatable article fields; nil means unchanged
type UpdateNewsRequest struct {
	Title         *string  `json:"title"`
	Excerpt       *string  `json:"excerpt"`
	Content       *string  `json:"content"`
	Category      *string  `json:"category"`
	FeaturedImage *string  `json:"featuredImage"`
	Tags          []string `json:"tags"`
	Status        *string  `json:"status"`
}

// AddCommentRequest defines the structure for appending a comment
type AddCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// SubscribeRequest defines the structure for newsletter subscription
type SubscribeRequest struct {
	Email  string `json:"email" binding:"required,email"`
	Source string `json:"source"`
}

// UnsubscribeRequest defines the structure for newsletter unsubscription
type UnsubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// UpdatePreferencesRequest defines the admin-side preference update
type UpdatePreferencesRequest struct {
	Preferences SubscriptionPreferences `json:"preferences" binding:"required"`
}
