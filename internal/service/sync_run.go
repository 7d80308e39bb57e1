// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"slices"
	"sync"

	"github.com/opensrp/fhircore-configsync/models"
)

// syncRun is the state of one remote resolution. Only the orchestrator
// goroutine driving the run touches it; fetch goroutines report through
// chunkResult values applied after each wave.
type syncRun struct {
	id    string
	queue *requestQueue

	// carriers maps a config carrier key to its manifest identifier.
	carriers     map[models.ResourceKey]string
	carrierOrder []models.ResourceKey
	carrierDocs  map[models.ResourceKey]models.Resource

	icons          []models.ResourceKey
	dependentTypes map[string]struct{}
	degraded       map[models.QueueStage]int

	progress *progressTracker
}

func newSyncRun(id string, progress models.ProgressFunc) *syncRun {
	return &syncRun{
		id:             id,
		queue:          newRequestQueue(),
		carriers:       make(map[models.ResourceKey]string),
		carrierDocs:    make(map[models.ResourceKey]models.Resource),
		dependentTypes: make(map[string]struct{}),
		degraded:       make(map[models.QueueStage]int),
		progress:       &progressTracker{fn: progress},
	}
}

// plan enqueues the classified manifest foci.
func (r *syncRun) plan(foci []models.SectionFocus) {
	for _, focus := range foci {
		key := focus.Key()

		switch focus.Kind {
		case models.FocusIcon:
			r.icons = append(r.icons, key)
		case models.FocusConfig:
			if _, ok := r.carriers[key]; !ok {
				r.carrierOrder = append(r.carrierOrder, key)
			}
			r.carriers[key] = focus.IdentifierValue
			r.queue.Enqueue(models.StageManifest, key)
		case models.FocusReference:
			r.queue.Enqueue(stageFor(focus), key)
		}
	}
}

// applyWave folds the results of one fetch wave of stage into the run.
// Every merged key is marked seen before any List entry is enqueued, so a
// member fetched by a sibling type in the same wave is not fetched again.
// Nested Lists found after ListResolution has drained are fetched in the
// current stage instead.
func (r *syncRun) applyWave(stage models.QueueStage, results []chunkResult) {
	for _, res := range results {
		for _, key := range res.merged {
			r.queue.MarkSeen(key)
		}
	}

	for _, res := range results {
		for _, resource := range res.carriers {
			r.carrierDocs[resource.Key()] = resource
		}
		for _, t := range res.dependentTypes {
			r.dependentTypes[t] = struct{}{}
		}
		for _, ref := range res.listRefs {
			if ref.Type == models.ResourceTypeList {
				r.queue.Enqueue(max(models.StageListResolution, stage), ref)
				continue
			}
			r.queue.Enqueue(models.StageListItemExpansion, ref)
		}
		r.degraded[stage] += res.failedChunks
	}
}

// syncScope returns the collected dependent resource types, sorted.
func (r *syncRun) syncScope() []string {
	out := make([]string, 0, len(r.dependentTypes))
	for t := range r.dependentTypes {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// chunkResult is what the fetches of one resource type report back.
type chunkResult struct {
	merged         []models.ResourceKey
	listRefs       []models.ResourceKey
	carriers       []models.Resource
	dependentTypes []string
	failedChunks   int
}

// progressTracker aggregates walker progress into one running count per
// stage. Walks of different resource types report concurrently.
type progressTracker struct {
	mu        sync.Mutex
	fn        models.ProgressFunc
	stage     models.QueueStage
	total     int
	completed int
}

// begin starts stage, or extends its total when the stage is drained again.
func (t *progressTracker) begin(stage models.QueueStage, pending int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stage != stage {
		t.stage = stage
		t.total = 0
		t.completed = 0
	}
	t.total += pending
}

// walk returns a per-walk callback. It must not be shared between walks.
func (t *progressTracker) walk() models.ProgressFunc {
	if t.fn == nil {
		return nil
	}

	last := 0
	return func(p models.Progress) {
		t.mu.Lock()
		defer t.mu.Unlock()

		t.completed += p.Completed - last
		last = p.Completed
		t.total = max(t.total, t.completed)

		t.fn(models.Progress{Stage: t.stage, Total: t.total, Completed: t.completed})
	}
}
