// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/go-resty/resty/v2"
	"github.com/opensrp/fhircore-configsync/internal/config"
	"github.com/opensrp/fhircore-configsync/internal/logger"
	"github.com/opensrp/fhircore-configsync/internal/utils"
	"github.com/opensrp/fhircore-configsync/models"
)

type fhirDataSource struct {
	client *utils.HTTPClient

	retryCount int
	newBackOff func() backoff.BackOff

	logger *logger.Logger
}

// NewFHIRDataSource constructs the resty implementation of [FHIRDataSource].
// It normalises and validates the base URL from cfg.Address, configures the
// request timeout and, when present, the bearer token.
//
// Returns an error if cfg.Address is empty or cannot be parsed as a URL.
func NewFHIRDataSource(cfg config.SyncAdapter, log *logger.Logger) (FHIRDataSource, error) {
	baseURL, err := normalizeBaseURL(cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter address: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	if token := strings.TrimSpace(cfg.Token); token != "" {
		client.SetAuthToken(token)
	}

	return &fhirDataSource{
		client:     client,
		retryCount: max(cfg.RetryCount, 0),
		newBackOff: defaultBackOff,
		logger:     log,
	}, nil
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 250 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	return b
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Search implements [FHIRDataSource].
func (f *fhirDataSource) Search(ctx context.Context, path string) (*models.Bundle, error) {
	return f.do(ctx, "adapter.Search", func() (*resty.Response, error) {
		return f.client.R().
			SetContext(ctx).
			Get(path)
	})
}

// SearchWithGatewayMode implements [FHIRDataSource].
func (f *fhirDataSource) SearchWithGatewayMode(ctx context.Context, path, mode string) (*models.Bundle, error) {
	return f.do(ctx, "adapter.SearchWithGatewayMode", func() (*resty.Response, error) {
		return f.client.R().
			SetContext(ctx).
			SetHeader(GatewayModeHeader, mode).
			Get(path)
	})
}

// PostBundle implements [FHIRDataSource]. The bundle is posted to the server
// base URL as FHIR batch interactions require.
func (f *fhirDataSource) PostBundle(ctx context.Context, bundle *models.Bundle) (*models.Bundle, error) {
	return f.do(ctx, "adapter.PostBundle", func() (*resty.Response, error) {
		return f.client.R().
			SetContext(ctx).
			SetBody(bundle).
			Post("")
	})
}

// do executes call, retrying transient failures, and decodes the response
// body as a Bundle.
func (f *fhirDataSource) do(ctx context.Context, op string, call func() (*resty.Response, error)) (*models.Bundle, error) {
	attempt := func() (*models.Bundle, error) {
		resp, err := call()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrHostUnreachable, err)
		}

		if err = mapHTTPError(resp); err != nil {
			if isTransient(err) {
				return nil, err
			}
			return nil, backoff.Permanent(err)
		}

		bundle, err := decodeBundle(resp.Body())
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		return bundle, nil
	}

	bundle, err := backoff.Retry(ctx, attempt,
		backoff.WithBackOff(f.newBackOff()),
		backoff.WithMaxTries(uint(f.retryCount+1)),
		backoff.WithNotify(func(err error, next time.Duration) {
			f.logger.Warn().Err(err).
				Str("func", op).
				Dur("retry_in", next).
				Msg("transient FHIR request failure, retrying")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bundle, nil
}

func decodeBundle(body []byte) (*models.Bundle, error) {
	bundle, err := models.ParseBundle(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	if bundle.ResourceType != models.ResourceTypeBundle {
		return nil, fmt.Errorf("%w: resourceType %q", ErrUnexpectedResponse, bundle.ResourceType)
	}
	return bundle, nil
}
