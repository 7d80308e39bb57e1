// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"net/url"
	"time"
)

// ServerURL holds a validated absolute http(s) URL.
// It implements the flag.Value interface.
type ServerURL struct {
	URL *url.URL
}

// parseFlags parses configuration flags from args.
//
// Flags:
//
//	-a FHIR server address (absolute http(s) URL)
//	-base-url canonical URL base for metadata resources
//	-app-id application id
//	-locale active language
//	-log-file append logs to this file instead of stdout
//	-d database DSN
//	-assets offline assets directory
//	-proxy-mode use the gateway-header request shape
//	-token bearer token
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-retry-count retries of transient failures
//	-sync-interval background sync period (e.g., "15m")
//	-concurrency resource types fetched in parallel per stage
//	-c/-config json file path with configs
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("configsync", flag.ContinueOnError)

	var serverAddress, baseURL ServerURL
	var appID, locale, logFile, databaseDSN, assetsDir, token, jsonConfigPath string
	var proxyMode bool
	var requestTimeout, syncInterval time.Duration
	var retryCount, concurrency int

	fs.Var(&serverAddress, "a", "FHIR server address")
	fs.Var(&baseURL, "base-url", "Canonical URL base")
	fs.StringVar(&appID, "app-id", "", "Application id")
	fs.StringVar(&locale, "locale", "", "Active language")
	fs.StringVar(&logFile, "log-file", "", "Log file path")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&assetsDir, "assets", "", "Offline assets directory")
	fs.BoolVar(&proxyMode, "proxy-mode", false, "Use gateway-header request shape")
	fs.StringVar(&token, "token", "", "Bearer token")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.IntVar(&retryCount, "retry-count", 0, "Retries of transient failures")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Background sync period (e.g., 15m)")
	fs.IntVar(&concurrency, "concurrency", 0, "Resource types fetched in parallel per stage")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			ID:          appID,
			Locale:      locale,
			FHIRBaseURL: baseURL.String(),
			LogFile:     logFile,
		},
		Adapter: Adapter{
			Address:        serverAddress.String(),
			RequestTimeout: requestTimeout,
			RetryCount:     retryCount,
			ProxyMode:      proxyMode,
			Token:          token,
		},
		Storage: Storage{
			DB:        DB{DSN: databaseDSN},
			AssetsDir: assetsDir,
		},
		Workers: Workers{
			SyncInterval: syncInterval,
			Concurrency:  concurrency,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns the URL or an empty string when unset.
func (u *ServerURL) String() string {
	if u == nil || u.URL == nil {
		return ""
	}
	return u.URL.String()
}

// Set parses s as an absolute http or https URL.
func (u *ServerURL) Set(s string) error {
	parsed, err := url.Parse(s)
	if err != nil {
		return err
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New("need an http or https URL")
	}

	if parsed.Host == "" {
		return errors.New("URL has no host")
	}

	u.URL = parsed
	return nil
}
