// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/opensrp/fhircore-configsync/internal/logger"
	"github.com/opensrp/fhircore-configsync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockResourceRepository(t *testing.T) (ResourceRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewResourceRepository(&DB{DB: db, logger: logger.Nop()}, logger.Nop()), mock
}

// ── Upsert / Get ────────────────────────────────────────────────────────────

func TestResourceRepository_UpsertThenGet(t *testing.T) {
	s := newMemoryStorages(t)
	ctx := context.Background()

	q := models.Resource{"resourceType": "Questionnaire", "id": "q-1", "status": "active"}
	require.NoError(t, s.Resources.Upsert(ctx, q))

	got, err := s.Resources.Get(ctx, "Questionnaire", "q-1")
	require.NoError(t, err)
	assert.Equal(t, "active", got["status"])
}

func TestResourceRepository_UpsertReplaces(t *testing.T) {
	s := newMemoryStorages(t)
	ctx := context.Background()

	require.NoError(t, s.Resources.Upsert(ctx, models.Resource{"resourceType": "Basic", "id": "b-1", "code": "v1"}))
	require.NoError(t, s.Resources.Upsert(ctx, models.Resource{"resourceType": "Basic", "id": "b-1", "code": "v2"}))

	all, err := s.Resources.Search(ctx, models.SearchQuery{ResourceType: "Basic"})
	require.NoError(t, err)
	require.Len(t, all, 1, "same (type, id) must not create a second record")
	assert.Equal(t, "v2", all[0]["code"])
}

func TestResourceRepository_SameIDDifferentTypes(t *testing.T) {
	s := newMemoryStorages(t)
	ctx := context.Background()

	require.NoError(t, s.Resources.Upsert(ctx, models.Resource{"resourceType": "Library", "id": "x"}))
	require.NoError(t, s.Resources.Upsert(ctx, models.Resource{"resourceType": "Measure", "id": "x"}))

	_, err := s.Resources.Get(ctx, "Library", "x")
	require.NoError(t, err)
	_, err = s.Resources.Get(ctx, "Measure", "x")
	require.NoError(t, err)
}

func TestResourceRepository_GetNotFound(t *testing.T) {
	s := newMemoryStorages(t)

	_, err := s.Resources.Get(context.Background(), "Questionnaire", "missing")
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestResourceRepository_UpsertInvalid(t *testing.T) {
	s := newMemoryStorages(t)

	err := s.Resources.Upsert(context.Background(), models.Resource{"resourceType": "Basic"})
	assert.ErrorIs(t, err, ErrInvalidResource)

	err = s.Resources.Upsert(context.Background(), models.Resource{"id": "b-1"})
	assert.ErrorIs(t, err, ErrInvalidResource)
}

// ── Search ──────────────────────────────────────────────────────────────────

func TestResourceRepository_SearchByIdentifier(t *testing.T) {
	s := newMemoryStorages(t)
	ctx := context.Background()

	for _, c := range []models.Resource{
		{"resourceType": "Composition", "id": "c-1", "identifier": map[string]any{"value": "quest"}},
		{"resourceType": "Composition", "id": "c-2", "identifier": map[string]any{"value": "other"}},
	} {
		require.NoError(t, s.Resources.Upsert(ctx, c))
	}

	found, err := s.Resources.Search(ctx, models.SearchQuery{
		ResourceType: "Composition",
		Filters:      []models.SearchFilter{{Path: "$.identifier.value", Value: "quest"}},
	})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "c-1", found[0].ID())
}

func TestResourceRepository_SearchInsertionOrderAndLimit(t *testing.T) {
	s := newMemoryStorages(t)
	ctx := context.Background()

	for _, id := range []string{"z", "a", "m"} {
		require.NoError(t, s.Resources.Upsert(ctx, models.Resource{"resourceType": "Binary", "id": id}))
	}

	found, err := s.Resources.Search(ctx, models.SearchQuery{ResourceType: "Binary", Limit: 2})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "z", found[0].ID())
	assert.Equal(t, "a", found[1].ID())
}

// ── failure paths (sqlmock) ─────────────────────────────────────────────────

func TestResourceRepository_UpsertExecError(t *testing.T) {
	repo, mock := newMockResourceRepository(t)

	mock.ExpectExec("INSERT INTO resources").
		WithArgs("Basic", "b-1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(errors.New("disk I/O error"))

	err := repo.Upsert(context.Background(), models.Resource{"resourceType": "Basic", "id": "b-1"})
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResourceRepository_GetQueryError(t *testing.T) {
	repo, mock := newMockResourceRepository(t)

	mock.ExpectQuery("SELECT content").
		WithArgs("Basic", "b-1").
		WillReturnError(errors.New("database is locked"))

	_, err := repo.Get(context.Background(), "Basic", "b-1")
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestResourceRepository_SearchSkipsUndecodableRows(t *testing.T) {
	repo, mock := newMockResourceRepository(t)

	rows := sqlmock.NewRows([]string{"content"}).
		AddRow(`{"resourceType":"Basic","id":"ok"}`).
		AddRow(`{"broken"`)
	mock.ExpectQuery("SELECT content FROM resources").WillReturnRows(rows)

	found, err := repo.Search(context.Background(), models.SearchQuery{ResourceType: "Basic"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "ok", found[0].ID())
}

func TestResourceRepository_SearchQueryError(t *testing.T) {
	repo, mock := newMockResourceRepository(t)

	mock.ExpectQuery("SELECT content FROM resources").WillReturnError(errors.New("no such table"))

	_, err := repo.Search(context.Background(), models.SearchQuery{ResourceType: "Basic"})
	assert.ErrorIs(t, err, ErrExecutingQuery)
}
