// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/opensrp/fhircore-configsync/internal/logger"
)

type syncScopeRepository struct {
	*DB
	logger *logger.Logger
}

func NewSyncScopeRepository(db *DB, logger *logger.Logger) SyncScopeRepository {
	return &syncScopeRepository{
		DB:     db,
		logger: logger,
	}
}

func (s *syncScopeRepository) SaveSyncScope(ctx context.Context, resourceTypes []string) error {
	log := logger.FromContext(ctx)

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "syncScopeRepository.SaveSyncScope").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, deleteSyncScope); err != nil {
		log.Err(err).Str("func", "syncScopeRepository.SaveSyncScope").Msg("failed to clear sync scope")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	for _, resourceType := range resourceTypes {
		if _, err = tx.ExecContext(ctx, insertSyncScope, resourceType); err != nil {
			log.Err(err).
				Str("func", "syncScopeRepository.SaveSyncScope").
				Str("resource_type", resourceType).
				Msg("failed to insert sync scope entry")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "syncScopeRepository.SaveSyncScope").Msg("failed to commit sync scope")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (s *syncScopeRepository) SyncScope(ctx context.Context) ([]string, error) {
	rows, err := s.DB.QueryContext(ctx, getSyncScope)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "syncScopeRepository.SyncScope").Msg("failed to query sync scope")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var resourceTypes []string
	for rows.Next() {
		var resourceType string
		if err = rows.Scan(&resourceType); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		resourceTypes = append(resourceTypes, resourceType)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return resourceTypes, nil
}
