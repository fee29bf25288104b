package model

import (
	"errors"

	"github.com/isaaccomputerscience/isaac-api-sub002/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID         = "id"
	FieldEmail      = "email"
	FieldGivenName  = "given_name"
	FieldFamilyName = "family_name"
	FieldDeleted    = "deleted"
)

var ErrUserNotFound = errors.New("user not found")

// User is the identity record owned by the account system.
type User struct {
	ID         string `db:"id"`
	Email      string `db:"email"`
	GivenName  string `db:"given_name"`
	FamilyName string `db:"family_name"`
	Deleted    bool   `db:"deleted"`
	model.Metadata
}

// UserSummary is what booking notifications need to address a user.
type UserSummary struct {
	ID         string `json:"id"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Email      string `json:"email"`
	Deleted    bool   `json:"deleted"`
}

func (u User) Summary() UserSummary {
	return UserSummary{
		ID:         u.ID,
		GivenName:  u.GivenName,
		FamilyName: u.FamilyName,
		Email:      u.Email,
		Deleted:    u.Deleted,
	}
}

func (s UserSummary) DisplayName() string {
	switch {
	case s.GivenName != "" && s.FamilyName != "":
		return s.GivenName + " " + s.FamilyName
	case s.GivenName != "":
		return s.GivenName
	default:
		return s.FamilyName
	}
}
