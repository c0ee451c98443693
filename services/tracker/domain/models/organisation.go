package models

import (
	"slices"

	"github.com/ghuser/worktrack/pkg/domainerr"
	"github.com/ghuser/worktrack/pkg/result"
)

var (
	ErrOrganisationOwnerExists   = domainerr.New(domainerr.KindAlreadyExists, "organisation.owner_exists", "user already owns the organisation")
	ErrOrganisationOwnerNotFound = domainerr.New(domainerr.KindNotFound, "organisation.owner_not_found", "user is not an owner of the organisation")
)

// Organisation is a company or team owned by one or more users.
type Organisation struct {
	id     ID[Organisation]
	name   OrganisationName
	owners []ID[User]
}

func NewOrganisation() *Organisation {
	return &Organisation{id: NewID[Organisation]()}
}

// RestoreOrganisation rebuilds an organisation without validating it.
func RestoreOrganisation(id ID[Organisation], name string, owners []ID[User]) *Organisation {
	return &Organisation{id: id, name: OrganisationName{name}, owners: slices.Clone(owners)}
}

func (o *Organisation) ID() ID[Organisation]       { return o.id }
func (o *Organisation) Name() OrganisationName     { return o.name }
func (o *Organisation) Owners() []ID[User]         { return slices.Clone(o.owners) }
func (o *Organisation) IsOwnedBy(id ID[User]) bool { return slices.Contains(o.owners, id) }

func (o *Organisation) UpdateName(s string) result.Result {
	return assign(&o.name, NewOrganisationName(s))
}

func (o *Organisation) AddOwner(id ID[User]) result.Result {
	return addID(&o.owners, id, ErrOrganisationOwnerExists)
}

func (o *Organisation) RemoveOwner(id ID[User]) result.Result {
	return removeID(&o.owners, id, ErrOrganisationOwnerNotFound)
}

// OrganisationBuilder assembles an Organisation from raw input.
type OrganisationBuilder struct {
	builder
	org *Organisation
}

func NewOrganisationBuilder() *OrganisationBuilder {
	return &OrganisationBuilder{org: NewOrganisation()}
}

func (b *OrganisationBuilder) WithName(s string) *OrganisationBuilder {
	b.apply("name", b.org.UpdateName(s))
	return b
}

func (b *OrganisationBuilder) WithOwners(ids []ID[User]) *OrganisationBuilder {
	for _, id := range ids {
		b.apply("owners", b.org.AddOwner(id))
	}
	return b
}

// Build requires a name and at least one owner.
func (b *OrganisationBuilder) Build() result.Of[*Organisation] {
	o := b.org
	return build(&b.builder, o,
		requirement{"name", ErrOrganisationNameEmpty, func() bool { return !o.name.IsZero() }},
		requirement{"owners", nil, func() bool { return len(o.owners) > 0 }},
	)
}

// MakeDefaultOrganisation builds an organisation owned by owner.
func MakeDefaultOrganisation(owner ID[User]) result.Of[*Organisation] {
	return NewOrganisationBuilder().
		WithName("Acme Corporation").
		WithOwners([]ID[User]{owner}).
		Build()
}
