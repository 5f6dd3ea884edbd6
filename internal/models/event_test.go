package models

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRegistrationCountSkipsInactive(t *testing.T) {
	event := NewEvent()
	event.Registrations = []Registration{
		{User: primitive.NewObjectID(), Status: RegistrationStatusRegistered},
		{User: primitive.NewObjectID(), Status: RegistrationStatusAttended},
		{User: primitive.NewObjectID(), Status: RegistrationStatusCancelled},
		{User: primitive.NewObjectID(), Status: RegistrationStatusRegistered},
	}
	if got := event.RegistrationCount(); got != 2 {
		t.Errorf("RegistrationCount = %d, want 2", got)
	}
}

func TestAvailableSpots(t *testing.T) {
	event := NewEvent()
	if event.AvailableSpots() != nil {
		t.Error("AvailableSpots != nil for an unbounded event")
	}

	capacity := 3
	event.MaxAttendees = &capacity
	event.Registrations = []Registration{
		{User: primitive.NewObjectID(), Status: RegistrationStatusRegistered},
	}
	if got := event.AvailableSpots(); got == nil || *got != 2 {
		t.Errorf("AvailableSpots = %v, want 2", got)
	}
}

func TestIsRegistrationOpen(t *testing.T) {
	future := time.Now().Add(time.Hour)
	past := time.Now().Add(-time.Hour)
	one := 1

	cases := []struct {
		name  string
		setup func(*Event)
		want  bool
	}{
		{"published no limits", func(e *Event) {}, true},
		{"draft", func(e *Event) { e.Status = EventStatusDraft }, false},
		{"cancelled", func(e *Event) { e.Status = EventStatusCancelled }, false},
		{"future deadline", func(e *Event) { e.RegistrationDeadline = &future }, true},
		{"past deadline", func(e *Event) { e.RegistrationDeadline = &past }, false},
		{"capacity left", func(e *Event) { e.MaxAttendees = &one }, true},
		{"capacity full", func(e *Event) {
			e.MaxAttendees = &one
			e.Registrations = []Registration{{User: primitive.NewObjectID(), Status: RegistrationStatusRegistered}}
		}, false},
		{"full of cancellations", func(e *Event) {
			e.MaxAttendees = &one
			e.Registrations = []Registration{{User: primitive.NewObjectID(), Status: RegistrationStatusCancelled}}
		}, true},
	}
	for _, tc := range cases {
		event := NewEvent()
		event.Status = EventStatusPublished
		tc.setup(event)
		if got := event.IsRegistrationOpen(); got != tc.want {
			t.Errorf("%s: IsRegistrationOpen = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestActiveRegistration(t *testing.T) {
	user := primitive.NewObjectID()
	event := NewEvent()

	if event.ActiveRegistration(user) != nil {
		t.Error("ActiveRegistration != nil on empty roster")
	}

	event.Registrations = []Registration{{User: user, Status: RegistrationStatusCancelled}}
	if event.ActiveRegistration(user) != nil {
		t.Error("cancelled entry reported as active")
	}

	event.Registrations = append(event.Registrations, Registration{User: user, Status: RegistrationStatusAttended})
	reg := event.ActiveRegistration(user)
	if reg == nil || reg.Status != RegistrationStatusAttended {
		t.Errorf("ActiveRegistration = %+v, want the attended entry", reg)
	}
}

func TestCanMutate(t *testing.T) {
	owner := primitive.NewObjectID()
	other := primitive.NewObjectID()

	if !CanMutate(owner, RoleMember, owner) {
		t.Error("owner denied")
	}
	if !CanMutate(other, RoleAdmin, owner) {
		t.Error("admin denied")
	}
	if CanMutate(other, RoleMember, owner) {
		t.Error("stranger allowed")
	}
}

func TestNewPagination(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		pages int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
	}
	for _, tc := range cases {
		pg := NewPagination(1, tc.limit, tc.total)
		if pg.Pages != tc.pages {
			t.Errorf("NewPagination(1, %d, %d).Pages = %d, want %d", tc.limit, tc.total, pg.Pages, tc.pages)
		}
	}
}
