// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/taibuivan/komik/internal/platform/events"
	"github.com/taibuivan/komik/internal/platform/validate"
	"github.com/taibuivan/komik/pkg/slug"
)

const maxNameLength = 50

// Service holds the genre business rules.
type Service struct {
	repo      Repository
	publisher events.Publisher
	logger    *slog.Logger
}

// NewService constructs a genre [Service].
func NewService(repo Repository, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// List returns all genres ordered by name.
func (service *Service) List(context context.Context) ([]*Genre, error) {
	return service.repo.List(context)
}

/*
Create validates and stores a new genre.

The slug is derived from the name when omitted. Duplicate names or slugs
surface as Conflict from the store.
*/
func (service *Service) Create(context context.Context, genre *Genre) error {
	if err := service.normalize(genre); err != nil {
		return err
	}

	if err := service.repo.Create(context, genre); err != nil {
		return err
	}

	service.logger.Info("genre_created", slog.Int("genre_id", genre.ID), slog.String("name", genre.Name))
	events.Emit(context, service.publisher, events.New(events.EntityGenre, events.ActionCreated, strconv.Itoa(genre.ID), ""))
	return nil
}

// Update renames a genre.
func (service *Service) Update(context context.Context, genre *Genre) error {
	if err := service.normalize(genre); err != nil {
		return err
	}

	if err := service.repo.Update(context, genre); err != nil {
		return err
	}

	service.logger.Info("genre_updated", slog.Int("genre_id", genre.ID))
	events.Emit(context, service.publisher, events.New(events.EntityGenre, events.ActionUpdated, strconv.Itoa(genre.ID), ""))
	return nil
}

// Delete removes a genre and its comic associations.
func (service *Service) Delete(context context.Context, id int) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("genre_deleted", slog.Int("genre_id", id))
	events.Emit(context, service.publisher, events.New(events.EntityGenre, events.ActionDeleted, strconv.Itoa(id), ""))
	return nil
}

func (service *Service) normalize(genre *Genre) error {
	genre.Name = strings.TrimSpace(genre.Name)
	if genre.Slug == "" {
		genre.Slug = slug.From(genre.Name)
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, genre.Name).MaxLen(FieldName, genre.Name, maxNameLength)
	if genre.Name != "" {
		validator.Slug(FieldSlug, genre.Slug)
	}
	return validator.Err()
}
