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

type resourceRepository struct {
	*DB
	logger *logger.Logger
}

func NewResourceRepository(db *DB, logger *logger.Logger) ResourceRepository {
	return &resourceRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *resourceRepository) Get(ctx context.Context, resourceType, id string) (models.Resource, error) {
	log := logger.FromContext(ctx)

	var content string
	err := r.DB.QueryRowContext(ctx, getResource, resourceType, id).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s", ErrResourceNotFound, resourceType, id)
	}
	if err != nil {
		log.Err(err).
			Str("func", "resourceRepository.Get").
			Str("resource_type", resourceType).
			Str("id", id).
			Msg("failed to query resource")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	resource, err := models.ParseResource([]byte(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return resource, nil
}

func (r *resourceRepository) Search(ctx context.Context, query models.SearchQuery) ([]models.Resource, error) {
	log := logger.FromContext(ctx)

	sqlQuery, args, err := buildSearchQuery(query)
	if err != nil {
		log.Err(err).
			Str("func", "resourceRepository.Search").
			Str("resource_type", query.ResourceType).
			Msg("failed to build search query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		log.Err(err).
			Str("func", "resourceRepository.Search").
			Str("resource_type", query.ResourceType).
			Msg("failed to execute search query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var resources []models.Resource
	for rows.Next() {
		var content string
		if err = rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		resource, parseErr := models.ParseResource([]byte(content))
		if parseErr != nil {
			log.Warn().Err(parseErr).
				Str("func", "resourceRepository.Search").
				Str("resource_type", query.ResourceType).
				Msg("skipping undecodable stored resource")
			continue
		}
		resources = append(resources, resource)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return resources, nil
}

func (r *resourceRepository) Upsert(ctx context.Context, resource models.Resource) error {
	log := logger.FromContext(ctx)

	if resource.ResourceType() == "" || resource.ID() == "" {
		return ErrInvalidResource
	}

	content, err := resource.JSON()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResource, err)
	}

	lastUpdated := resource.LastUpdated()
	if lastUpdated == "" {
		lastUpdated = time.Now().UTC().Format(time.RFC3339Nano)
	}

	_, err = r.DB.ExecContext(ctx, upsertResource, resource.ResourceType(), resource.ID(), string(content), lastUpdated)
	if err != nil {
		log.Err(err).
			Str("func", "resourceRepository.Upsert").
			Str("resource_type", resource.ResourceType()).
			Str("id", resource.ID()).
			Msg("failed to execute upsert for resource")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
