package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/contactapp/backend/internal/model"
	"github.com/contactapp/backend/internal/repository"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo repository.ContactRepository
}

// NewContactService creates a ContactService backed by the given repository.
func NewContactService(repo repository.ContactRepository) ContactService {
	return &contactServiceImpl{repo: repo}
}

func (s *contactServiceImpl) List(ctx context.Context, opts model.ContactListOptions) (*model.ContactPage, error) {
	opts.Query = strings.TrimSpace(opts.Query)
	if opts.Page < 1 {
		opts.Page = model.DefaultPage
	}
	if opts.Limit < 1 {
		opts.Limit = model.DefaultLimit
	}
	if opts.Limit > model.MaxLimit {
		opts.Limit = model.MaxLimit
	}
	return s.repo.List(ctx, opts)
}

func (s *contactServiceImpl) GetByID(ctx context.Context, id string) (*model.Contact, error) {
	return s.repo.GetByID(ctx, id)
}

// Create trims every field and requires a non-empty name.
func (s *contactServiceImpl) Create(ctx context.Context, in model.ContactInput) (*model.Contact, error) {
	c := &model.Contact{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Photo:       strings.TrimSpace(in.Photo),
		Action:      strings.TrimSpace(in.Action),
	}
	if c.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *contactServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
