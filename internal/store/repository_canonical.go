// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/opensrp/fhircore-configsync/internal/logger"
	"github.com/opensrp/fhircore-configsync/models"
)

type canonicalIndexRepository struct {
	*DB
	logger *logger.Logger
}

func NewCanonicalIndexRepository(db *DB, logger *logger.Logger) CanonicalIndexRepository {
	return &canonicalIndexRepository{
		DB:     db,
		logger: logger,
	}
}

func (c *canonicalIndexRepository) InstallCanonical(ctx context.Context, resource models.Resource) error {
	log := logger.FromContext(ctx)

	name := resource.Name()
	if name == "" {
		return ErrCanonicalNameMissing
	}

	content, err := resource.JSON()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResource, err)
	}

	_, err = c.DB.ExecContext(ctx, upsertCanonical,
		name,
		resource.ResourceType(),
		resource.ID(),
		resource.URL(),
		string(content),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		log.Err(err).
			Str("func", "canonicalIndexRepository.InstallCanonical").
			Str("name", name).
			Str("resource_type", resource.ResourceType()).
			Msg("failed to install canonical resource")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (c *canonicalIndexRepository) GetCanonical(ctx context.Context, name string) (models.Resource, error) {
	var content string
	err := c.DB.QueryRowContext(ctx, getCanonical, name).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: canonical %q", ErrResourceNotFound, name)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "canonicalIndexRepository.GetCanonical").
			Str("name", name).
			Msg("failed to query canonical resource")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	resource, err := models.ParseResource([]byte(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return resource, nil
}
