// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/opensrp/fhircore-configsync/models"
)

const (
	upsertResource = `
		INSERT INTO resources (resource_type, id, content, last_updated)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (resource_type, id) DO UPDATE SET
			content = excluded.content,
			last_updated = excluded.last_updated;`

	getResource = `
		SELECT content
		FROM resources
		WHERE resource_type = ? AND id = ?;`

	upsertCanonical = `
		INSERT INTO canonical_index (name, resource_type, id, url, content, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			resource_type = excluded.resource_type,
			id = excluded.id,
			url = excluded.url,
			content = excluded.content,
			updated_at = excluded.updated_at;`

	getCanonical = `
		SELECT content
		FROM canonical_index
		WHERE name = ?;`

	deleteSyncScope = `DELETE FROM sync_scope;`

	insertSyncScope = `INSERT OR IGNORE INTO sync_scope (resource_type) VALUES (?);`

	getSyncScope = `
		SELECT resource_type
		FROM sync_scope
		ORDER BY resource_type;`
)

// buildSearchQuery builds the SELECT for a resource search. Filters compare
// the JSON value at a path of the stored document.
func buildSearchQuery(query models.SearchQuery) (string, []any, error) {
	builder := sq.Select("content").
		From("resources").
		Where(sq.Eq{"resource_type": query.ResourceType})

	for _, filter := range query.Filters {
		builder = builder.Where(sq.Expr("json_extract(content, ?) = ?", filter.Path, filter.Value))
	}

	builder = builder.OrderBy("rowid")

	if query.Limit > 0 {
		builder = builder.Limit(query.Limit)
	}

	return builder.ToSql()
}
