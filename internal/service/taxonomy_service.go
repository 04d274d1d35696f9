package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/radio-cms-api/internal/models"
	"github.com/radio-cms-api/internal/repository"
	"github.com/radio-cms-api/internal/validation"
)

// taxonomyService is the concrete implementation of TaxonomyService
type taxonomyService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

func newTaxonomyService(repos *repository.Repositories, log zerolog.Logger) *taxonomyService {
	return &taxonomyService{
		repos: repos,
		log:   log.With().Str("service", "taxonomy").Logger(),
	}
}

func (s *taxonomyService) ListPersons(ctx context.Context, role string) ([]models.Person, error) {
	return s.repos.Person.List(ctx, role)
}

func (s *taxonomyService) CreatePerson(ctx context.Context, name, role string) (*models.Person, error) {
	person := &models.Person{
		ID:   uuid.NewString(),
		Name: strings.TrimSpace(name),
		Role: role,
	}
	if errs := validation.ValidatePerson(person); len(errs) > 0 {
		return nil, &ValidationFailedError{Errors: errs}
	}
	if err := s.repos.Person.Create(ctx, person); err != nil {
		return nil, err
	}
	s.log.Info().Str("person_id", person.ID).Str("role", person.Role).Msg("Person created")
	return person, nil
}

func (s *taxonomyService) UpdatePerson(ctx context.Context, id, name string) (*models.Person, error) {
	existing, err := s.repos.Person.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, repository.ErrNotFound
	}

	existing.Name = strings.TrimSpace(name)
	if errs := validation.ValidatePerson(existing); len(errs) > 0 {
		return nil, &ValidationFailedError{Errors: errs}
	}
	if err := s.repos.Person.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeletePerson removes a guest/navigator unless an article still
// references them.
func (s *taxonomyService) DeletePerson(ctx context.Context, id string) error {
	existing, err := s.repos.Person.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return repository.ErrNotFound
	}

	used, err := s.repos.Person.InUse(ctx, id, existing.Role)
	if err != nil {
		return err
	}
	if used {
		return repository.ErrInUse
	}
	return s.repos.Person.Delete(ctx, id)
}

func (s *taxonomyService) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.repos.Tag.List(ctx)
}

func (s *taxonomyService) CreateTag(ctx context.Context, name string) (*models.Tag, error) {
	tag := &models.Tag{
		ID:   uuid.NewString(),
		Name: strings.TrimSpace(name),
	}
	tag.Slug = validation.Slugify(tag.Name)
	if errs := validation.ValidateTag(tag); len(errs) > 0 {
		return nil, &ValidationFailedError{Errors: errs}
	}
	if err := s.repos.Tag.Create(ctx, tag); err != nil {
		return nil, err
	}
	s.log.Info().Str("tag_id", tag.ID).Str("slug", tag.Slug).Msg("Tag created")
	return tag, nil
}

func (s *taxonomyService) UpdateTag(ctx context.Context, id, name string) (*models.Tag, error) {
	existing, err := s.repos.Tag.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, repository.ErrNotFound
	}

	existing.Name = strings.TrimSpace(name)
	existing.Slug = validation.Slugify(existing.Name)
	if errs := validation.ValidateTag(existing); len(errs) > 0 {
		return nil, &ValidationFailedError{Errors: errs}
	}
	if err := s.repos.Tag.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteTag removes a tag unless an article still references it.
func (s *taxonomyService) DeleteTag(ctx context.Context, id string) error {
	existing, err := s.repos.Tag.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return repository.ErrNotFound
	}

	used, err := s.repos.Tag.InUse(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return repository.ErrInUse
	}
	return s.repos.Tag.Delete(ctx, id)
}

func (s *taxonomyService) CountPersons(ctx context.Context) (int, error) {
	return s.repos.Person.Count(ctx)
}

func (s *taxonomyService) CountTags(ctx context.Context) (int, error) {
	return s.repos.Tag.Count(ctx)
}
