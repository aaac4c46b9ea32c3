package users

import (
	"time"

	"github.com/super0605/customer-service-platform-backend/internal/authz"
)

// User is an account. The password hash never leaves the repository.
type User struct {
	ID             int64      `json:"id"`
	FirstName      string     `json:"firstName"`
	Title          string     `json:"title"`
	SurName        string     `json:"surName"`
	Company        *string    `json:"company,omitempty"`
	ABN            *string    `json:"abn,omitempty"`
	TFN            *string    `json:"tfn,omitempty"`
	PrimaryEmail   *string    `json:"primaryEmail,omitempty"`
	SecondaryEmail *string    `json:"secondaryEmail,omitempty"`
	DateOfBirth    *time.Time `json:"dateOfBirth,omitempty"`
	HomePhone      *string    `json:"homePhone,omitempty"`
	MobilePhone    *string    `json:"mobilePhone,omitempty"`
	Fax            *string    `json:"fax,omitempty"`
	PrimaryAddress *string    `json:"primaryAddress,omitempty"`
	PostalAddress  *string    `json:"postalAddress,omitempty"`
	SystemRole     authz.Role `json:"systemRole"`
	OrgID          *int64     `json:"orgId,omitempty"`
}

// CreateInput carries the fields of a new user. The password is always
// generated server side; SUPERADMIN cannot be assigned.
type CreateInput struct {
	SystemRole     string     `json:"systemRole" validate:"required,oneof=MANAGER_ADMIN MANAGER STANDARD_USER"`
	OrgID          *int64     `json:"orgId" validate:"omitempty,min=1"`
	FirstName      string     `json:"firstName" validate:"required,max=45"`
	Title          string     `json:"title" validate:"required,max=45"`
	SurName        string     `json:"surName" validate:"required,max=45"`
	Company        *string    `json:"company" validate:"omitempty,max=255"`
	ABN            *string    `json:"abn" validate:"omitempty,len=11"`
	TFN            *string    `json:"tfn" validate:"omitempty,max=9"`
	PrimaryEmail   *string    `json:"primaryEmail" validate:"omitempty,email,max=64"`
	SecondaryEmail *string    `json:"secondaryEmail" validate:"omitempty,email,max=64"`
	DateOfBirth    *time.Time `json:"dateOfBirth"`
	HomePhone      *string    `json:"homePhone" validate:"omitempty,max=16"`
	MobilePhone    *string    `json:"mobilePhone" validate:"omitempty,max=16"`
	Fax            *string    `json:"fax" validate:"omitempty,max=16"`
	PrimaryAddress *string    `json:"primaryAddress" validate:"omitempty,max=255"`
	PostalAddress  *string    `json:"postalAddress" validate:"omitempty,max=255"`
}

// HasLogin reports whether at least one login identifier is present.
func (in CreateInput) HasLogin() bool {
	return in.PrimaryEmail != nil || in.HomePhone != nil || in.MobilePhone != nil
}

// UpdateInput carries a partial user update; nil fields stay untouched.
// SystemRole accepts the four mutable roles only.
type UpdateInput struct {
	SystemRole     *string    `json:"systemRole" validate:"omitempty,oneof=MANAGER_ADMIN MANAGER STANDARD_USER NOT_ACTIVE"`
	OrgID          *int64     `json:"orgId" validate:"omitempty,min=1"`
	FirstName      *string    `json:"firstName" validate:"omitempty,max=45"`
	Title          *string    `json:"title" validate:"omitempty,max=45"`
	SurName        *string    `json:"surName" validate:"omitempty,max=45"`
	Company        *string    `json:"company" validate:"omitempty,max=255"`
	ABN            *string    `json:"abn" validate:"omitempty,len=11"`
	TFN            *string    `json:"tfn" validate:"omitempty,max=9"`
	PrimaryEmail   *string    `json:"primaryEmail" validate:"omitempty,email,max=64"`
	SecondaryEmail *string    `json:"secondaryEmail" validate:"omitempty,email,max=64"`
	DateOfBirth    *time.Time `json:"dateOfBirth"`
	HomePhone      *string    `json:"homePhone" validate:"omitempty,max=16"`
	MobilePhone    *string    `json:"mobilePhone" validate:"omitempty,max=16"`
	Fax            *string    `json:"fax" validate:"omitempty,max=16"`
	PrimaryAddress *string    `json:"primaryAddress" validate:"omitempty,max=255"`
	PostalAddress  *string    `json:"postalAddress" validate:"omitempty,max=255"`
}

// DetailsChanged reports whether any personal-detail field is present.
// The system role is not a personal detail.
func (in UpdateInput) DetailsChanged() bool {
	return in.OrgID != nil || in.FirstName != nil || in.Title != nil || in.SurName != nil ||
		in.Company != nil || in.ABN != nil || in.TFN != nil ||
		in.PrimaryEmail != nil || in.SecondaryEmail != nil || in.DateOfBirth != nil ||
		in.HomePhone != nil || in.MobilePhone != nil || in.Fax != nil ||
		in.PrimaryAddress != nil || in.PostalAddress != nil
}

// Created pairs a new user with its generated password, returned exactly
// once at creation time.
type Created struct {
	Password string `json:"password"`
	User     User   `json:"user"`
}
