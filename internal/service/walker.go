// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/opensrp/fhircore-configsync/internal/adapter"
	"github.com/opensrp/fhircore-configsync/internal/logger"
	"github.com/opensrp/fhircore-configsync/models"
)

// pageHandler receives every page of a walk before the next one is
// requested.
type pageHandler func(ctx context.Context, page *models.Bundle)

// paginationWalker executes a shaped request and follows "next" links.
type paginationWalker struct {
	source adapter.FHIRDataSource
	logger *logger.Logger
}

func newPaginationWalker(source adapter.FHIRDataSource, logger *logger.Logger) *paginationWalker {
	return &paginationWalker{source: source, logger: logger}
}

// Walk issues req, hands every page to handle and reports progress after
// each page. It stops when a page has no next link, or when a next link
// repeats. The number of entries seen is returned.
func (w *paginationWalker) Walk(ctx context.Context, req models.ShapedRequest, stage models.QueueStage, progress models.ProgressFunc, handle pageHandler) (int, error) {
	page, err := w.first(ctx, req)
	if err != nil {
		return 0, err
	}

	mode := req.Headers[adapter.GatewayModeHeader]
	visited := make(map[string]struct{})
	if req.Method != http.MethodPost {
		visited[req.Path] = struct{}{}
	}
	completed := 0

	for {
		handle(ctx, page)

		completed += len(page.Entry)
		total := completed
		if page.Total != nil && *page.Total > total {
			total = *page.Total
		}
		if progress != nil {
			progress(models.Progress{Stage: stage, Total: total, Completed: completed})
		}

		next := page.NextLink()
		if next == "" {
			return completed, nil
		}
		if _, ok := visited[next]; ok {
			w.logger.Warn().
				Str("func", "paginationWalker.Walk").
				Str("next", next).
				Msg("pagination link repeats, stopping walk")
			return completed, nil
		}
		visited[next] = struct{}{}

		page, err = w.search(ctx, next, mode)
		if err != nil {
			return completed, fmt.Errorf("follow next link: %w", err)
		}
	}
}

func (w *paginationWalker) first(ctx context.Context, req models.ShapedRequest) (*models.Bundle, error) {
	if req.Method == http.MethodPost {
		return w.source.PostBundle(ctx, req.Body)
	}
	return w.search(ctx, req.Path, req.Headers[adapter.GatewayModeHeader])
}

func (w *paginationWalker) search(ctx context.Context, path, mode string) (*models.Bundle, error) {
	if mode != "" {
		return w.source.SearchWithGatewayMode(ctx, path, mode)
	}
	return w.source.Search(ctx, path)
}
