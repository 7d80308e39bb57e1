// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/opensrp/fhircore-configsync/internal/config"
	"github.com/opensrp/fhircore-configsync/internal/logger"
)

// Storages groups the local repositories so they can be passed to the
// service layer as one value.
type Storages struct {
	Resources      ResourceRepository
	CanonicalIndex CanonicalIndexRepository
	SyncScope      SyncScopeRepository

	db *DB
}

// NewStorages initialises the storage layer:
//  1. opens the SQLite database named by cfg.DSN;
//  2. runs pending schema migrations via [DB.Migrate];
//  3. wires the repositories to the shared connection.
func NewStorages(ctx context.Context, cfg config.SyncStorage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Str("func", "NewStorages").Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return newStorages(db, logger), nil
}

func newStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		Resources:      NewResourceRepository(db, logger),
		CanonicalIndex: NewCanonicalIndexRepository(db, logger),
		SyncScope:      NewSyncScopeRepository(db, logger),
		db:             db,
	}
}

// Close releases the database connection.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
