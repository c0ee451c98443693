package models

import "github.com/ghuser/worktrack/pkg/result"

var (
	organisationNameRules = newTextRules("organisation name", "organisation_name", 2, 100)
	firstNameRules        = newTextRules("first name", "first_name", 2, 50)
	lastNameRules         = newTextRules("last name", "last_name", 2, 50)
	descriptionRules      = newTextRules("description", "description", 1, 2000)
	contentReferenceRules = newTextRules("content reference", "content_reference", 1, 1024)
)

var (
	ErrOrganisationNameEmpty    = organisationNameRules.empty
	ErrOrganisationNameTooShort = organisationNameRules.tooShort
	ErrOrganisationNameTooLong  = organisationNameRules.tooLong

	ErrFirstNameEmpty    = firstNameRules.empty
	ErrFirstNameTooShort = firstNameRules.tooShort
	ErrFirstNameTooLong  = firstNameRules.tooLong

	ErrLastNameEmpty    = lastNameRules.empty
	ErrLastNameTooShort = lastNameRules.tooShort
	ErrLastNameTooLong  = lastNameRules.tooLong

	ErrDescriptionEmpty   = descriptionRules.empty
	ErrDescriptionTooLong = descriptionRules.tooLong

	ErrContentReferenceEmpty   = contentReferenceRules.empty
	ErrContentReferenceTooLong = contentReferenceRules.tooLong
)

// OrganisationName is the validated name of an Organisation (2-100 characters).
type OrganisationName struct{ value string }

// ValidateOrganisationName reports every rule s violates.
func ValidateOrganisationName(s string) result.Result { return organisationNameRules.validate(s) }

// NewOrganisationName validates s and wraps it.
func NewOrganisationName(s string) result.Of[OrganisationName] {
	return createText(s, organisationNameRules, func(v string) OrganisationName { return OrganisationName{v} })
}

func (n OrganisationName) String() string { return n.value }
func (n OrganisationName) IsZero() bool   { return n.value == "" }

// PersonName is a first or last name (2-50 characters). The two share a
// type but report distinct errors.
type PersonName struct{ value string }

// NewFirstName validates s as a first name.
func NewFirstName(s string) result.Of[PersonName] {
	return createText(s, firstNameRules, func(v string) PersonName { return PersonName{v} })
}

// NewLastName validates s as a last name.
func NewLastName(s string) result.Of[PersonName] {
	return createText(s, lastNameRules, func(v string) PersonName { return PersonName{v} })
}

func (n PersonName) String() string { return n.value }
func (n PersonName) IsZero() bool   { return n.value == "" }

// Description is free text attached to work items and projects.
type Description struct{ value string }

// ValidateDescription reports every rule s violates.
func ValidateDescription(s string) result.Result { return descriptionRules.validate(s) }

// NewDescription validates s and wraps it.
func NewDescription(s string) result.Of[Description] {
	return createText(s, descriptionRules, func(v string) Description { return Description{v} })
}

func (d Description) String() string { return d.value }
func (d Description) IsZero() bool   { return d.value == "" }

// ContentReference locates the stored body of a Documentation, usually an
// object key.
type ContentReference struct{ value string }

// NewContentReference validates s and wraps it.
func NewContentReference(s string) result.Of[ContentReference] {
	return createText(s, contentReferenceRules, func(v string) ContentReference { return ContentReference{v} })
}

func (c ContentReference) String() string { return c.value }
func (c ContentReference) IsZero() bool   { return c.value == "" }
