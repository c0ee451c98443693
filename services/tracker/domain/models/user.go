package models

import (
	"time"

	"github.com/ghuser/worktrack/pkg/result"
)

// User is a person who owns organisations and workspaces and gets assigned
// work.
type User struct {
	id           ID[User]
	firstName    PersonName
	lastName     PersonName
	email        Email
	passwordHash []byte
	createdAt    time.Time
}

// NewUser returns a user with a fresh id and no profile data.
func NewUser() *User {
	return &User{id: NewID[User](), createdAt: now()}
}

// RestoreUser rebuilds a user from stored fields without validating them.
// A nil passwordHash leaves the user unable to sign in.
func RestoreUser(id ID[User], firstName, lastName, email string, passwordHash []byte, createdAt time.Time) *User {
	return &User{
		id:           id,
		firstName:    PersonName{firstName},
		lastName:     PersonName{lastName},
		email:        Email{email},
		passwordHash: passwordHash,
		createdAt:    createdAt,
	}
}

func (u *User) ID() ID[User]          { return u.id }
func (u *User) FirstName() PersonName { return u.firstName }
func (u *User) LastName() PersonName  { return u.lastName }
func (u *User) Email() Email          { return u.email }
func (u *User) CreatedAt() time.Time  { return u.createdAt }

// PasswordHash is the stored bcrypt hash, nil when no password was set.
func (u *User) PasswordHash() []byte { return u.passwordHash }

// SetPasswordHash replaces the credential. Hashing happens outside the domain.
func (u *User) SetPasswordHash(hash []byte) { u.passwordHash = hash }

// FullName joins first and last name.
func (u *User) FullName() string {
	switch {
	case u.firstName.IsZero():
		return u.lastName.String()
	case u.lastName.IsZero():
		return u.firstName.String()
	}
	return u.firstName.String() + " " + u.lastName.String()
}

func (u *User) UpdateFirstName(s string) result.Result { return assign(&u.firstName, NewFirstName(s)) }
func (u *User) UpdateLastName(s string) result.Result  { return assign(&u.lastName, NewLastName(s)) }
func (u *User) UpdateEmail(s string) result.Result     { return assign(&u.email, NewEmail(s)) }

// UserBuilder assembles a User from raw input.
type UserBuilder struct {
	builder
	user *User
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{user: NewUser()}
}

func (b *UserBuilder) WithFirstName(s string) *UserBuilder {
	b.apply("first_name", b.user.UpdateFirstName(s))
	return b
}

func (b *UserBuilder) WithLastName(s string) *UserBuilder {
	b.apply("last_name", b.user.UpdateLastName(s))
	return b
}

func (b *UserBuilder) WithEmail(s string) *UserBuilder {
	b.apply("email", b.user.UpdateEmail(s))
	return b
}

func (b *UserBuilder) Build() result.Of[*User] {
	u := b.user
	return build(&b.builder, u,
		requirement{"first_name", ErrFirstNameEmpty, func() bool { return !u.firstName.IsZero() }},
		requirement{"last_name", ErrLastNameEmpty, func() bool { return !u.lastName.IsZero() }},
		requirement{"email", ErrEmailEmpty, func() bool { return !u.email.IsZero() }},
	)
}

// MakeDefaultUser builds a valid user for tests and seed data.
func MakeDefaultUser() result.Of[*User] {
	return NewUserBuilder().
		WithFirstName("Ada").
		WithLastName("Lovelace").
		WithEmail("ada@example.com").
		Build()
}
