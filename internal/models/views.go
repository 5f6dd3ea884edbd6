package models

// Pagination is the list-endpoint paging block
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NewPagination computes a pagination block from a total count.
func NewPagination(page, limit int, total int64) Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// RegistrationView is a roster entry with the registrant identity resolved
type RegistrationView struct {
	Registration
	User UserRef `json:"user"`
}

// EventView is an event with its organizer resolved and derived counters
// attached. The outer fields shadow the raw reference fields of the embedded
// Event when serialized.
type EventView struct {
	*Event
	Organizer          UserRef            `json:"organizer"`
	Registrations      []RegistrationView `json:"registrations,omitempty"`
	RegistrationCount  int                `json:"registrationCount"`
	AvailableSpots     *int               `json:"availableSpots"`
	IsRegistrationOpen bool               `json:"isRegistrationOpen"`
}

// CommentView is a comment with the commenter identity resolved
type CommentView struct {
	Comment
	User UserRef `json:"user"`
}

// NewsView is an article with its author resolved and derived counters
// attached.
type NewsView struct {
	*News
	Author       UserRef       `json:"author"`
	Comments     []CommentView `json:"comments,omitempty"`
	LikeCount    int           `json:"likeCount"`
	CommentCount int           `json:"commentCount"`
}

// RegistrationResult is returned by roster mutations
type RegistrationResult struct {
	RegistrationCount int  `json:"registrationCount"`
	AvailableSpots    *int `json:"availableSpots"`
}

// LikeResult is returned by the like toggle
type LikeResult struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"likeCount"`
}
