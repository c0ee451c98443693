package services

import (
	"context"
	"fmt"

	"github.com/ghuser/worktrack/pkg/result"
	"github.com/ghuser/worktrack/services/tracker/domain/models"
	"github.com/ghuser/worktrack/services/tracker/domain/repositories"
)

// OrganisationService manages organisations and their owners.
type OrganisationService struct {
	repo    repositories.OrganisationRepository
	users   repositories.UserRepository
	metrics *metrics
}

// Create persists an organisation. Every owner must be a registered user.
func (s *OrganisationService) Create(ctx context.Context, name string, owners []models.ID[models.User]) (*models.Organisation, error) {
	if err := ensureExist[models.User](ctx, s.users, "user", owners...); err != nil {
		return nil, err
	}
	built := models.NewOrganisationBuilder().WithName(name).WithOwners(owners).Build()
	if err := s.metrics.check(ctx, "organisation", built.Result()); err != nil {
		return nil, err
	}
	o := built.Value()
	if err := s.repo.Save(ctx, o); err != nil {
		return nil, fmt.Errorf("save organisation: %w", err)
	}
	return o, nil
}

func (s *OrganisationService) Get(ctx context.Context, id models.ID[models.Organisation]) (*models.Organisation, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get organisation: %w", err)
	}
	return o, nil
}

func (s *OrganisationService) AddOwner(ctx context.Context, id models.ID[models.Organisation], user models.ID[models.User]) (*models.Organisation, error) {
	if err := ensureExist[models.User](ctx, s.users, "user", user); err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(o *models.Organisation) result.Result { return o.AddOwner(user) })
}

func (s *OrganisationService) RemoveOwner(ctx context.Context, id models.ID[models.Organisation], user models.ID[models.User]) (*models.Organisation, error) {
	return s.mutate(ctx, id, func(o *models.Organisation) result.Result { return o.RemoveOwner(user) })
}

func (s *OrganisationService) mutate(ctx context.Context, id models.ID[models.Organisation], fn func(*models.Organisation) result.Result) (*models.Organisation, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.metrics.check(ctx, "organisation", fn(o)); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, o); err != nil {
		return nil, fmt.Errorf("update organisation: %w", err)
	}
	return o, nil
}
