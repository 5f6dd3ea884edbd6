package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// User represents a member account
type User struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FirstName            string             `bson:"firstName" json:"firstName"`
	LastName             string             `bson:"lastName" json:"lastName"`
	Email                string             `bson:"email" json:"email"`
	Password             string             `bson:"password" json:"-"`
	Role                 string             `bson:"role" json:"role"`
	Organization         string             `bson:"organization,omitempty" json:"organization,omitempty"`
	Phone                string             `bson:"phone,omitempty" json:"phone,omitempty"`
	IsEmailVerified      bool               `bson:"isEmailVerified" json:"isEmailVerified"`
	VerificationToken    string             `bson:"verificationToken,omitempty" json:"-"`
	ResetPasswordToken   string             `bson:"resetPasswordToken,omitempty" json:"-"`
	ResetPasswordExpires time.Time          `bson:"resetPasswordExpires,omitempty" json:"-"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserRef is the public identity shape embedded in event and news responses.
type UserRef struct {
	ID        primitive.ObjectID `json:"id"`
	FirstName string             `json:"firstName"`
	LastName  string             `json:"lastName"`
}

// Ref returns the public identity of the user.
func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName}
}

// CanMutate reports whether the actor may mutate a resource owned by ownerID.
// Owners and admins may; everyone else may not.
func CanMutate(actorID primitive.ObjectID, actorRole string, ownerID primitive.ObjectID) bool {
	return actorID == ownerID || actorRole == RoleAdmin
}
