// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/opensrp/fhircore-configsync/internal/utils"
	"github.com/opensrp/fhircore-configsync/models"
)

// ChunkSize bounds the number of ids carried by one RequestBatch.
const ChunkSize = 20

// requestQueue is the staged queue of one sync run. It is owned by a single
// run and must not be shared between goroutines.
type requestQueue struct {
	stages map[models.QueueStage]*stageQueue
	seen   map[models.ResourceKey]struct{}
}

// stageQueue groups pending ids by resource type, keeping the order in which
// types and ids were first enqueued.
type stageQueue struct {
	types []string
	ids   map[string][]string
}

func newRequestQueue() *requestQueue {
	return &requestQueue{
		stages: make(map[models.QueueStage]*stageQueue),
		seen:   make(map[models.ResourceKey]struct{}),
	}
}

// Enqueue adds key to stage. A key already enqueued or marked seen during
// the run is ignored and false is returned.
func (q *requestQueue) Enqueue(stage models.QueueStage, key models.ResourceKey) bool {
	if stage >= models.StageDone || key.Type == "" || key.ID == "" {
		return false
	}
	if _, ok := q.seen[key]; ok {
		return false
	}
	q.seen[key] = struct{}{}

	sq, ok := q.stages[stage]
	if !ok {
		sq = &stageQueue{ids: make(map[string][]string)}
		q.stages[stage] = sq
	}
	if _, ok = sq.ids[key.Type]; !ok {
		sq.types = append(sq.types, key.Type)
	}
	sq.ids[key.Type] = append(sq.ids[key.Type], key.ID)

	return true
}

// MarkSeen records key as already fetched so that later Enqueue calls skip
// it.
func (q *requestQueue) MarkSeen(key models.ResourceKey) {
	q.seen[key] = struct{}{}
}

// Len returns the number of ids pending in stage.
func (q *requestQueue) Len(stage models.QueueStage) int {
	sq, ok := q.stages[stage]
	if !ok {
		return 0
	}
	n := 0
	for _, ids := range sq.ids {
		n += len(ids)
	}
	return n
}

// Drain empties stage and returns its content as batches grouped by type,
// each chunked to at most ChunkSize ids.
func (q *requestQueue) Drain(stage models.QueueStage) [][]models.RequestBatch {
	sq, ok := q.stages[stage]
	if !ok {
		return nil
	}
	delete(q.stages, stage)

	out := make([][]models.RequestBatch, 0, len(sq.types))
	for _, resourceType := range sq.types {
		chunks := utils.Chunk(sq.ids[resourceType], ChunkSize)
		batches := make([]models.RequestBatch, 0, len(chunks))
		for _, ids := range chunks {
			batches = append(batches, models.RequestBatch{
				Stage:        stage,
				ResourceType: resourceType,
				IDs:          ids,
			})
		}
		out = append(out, batches)
	}

	return out
}
