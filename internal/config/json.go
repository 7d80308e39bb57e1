// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk layout of the JSON config file.
type StructuredJSONConfig struct {
	App struct {
		ID          string `json:"id"`
		Locale      string `json:"locale"`
		FHIRBaseURL string `json:"fhir_base_url"`
		Version     string `json:"version"`
		LogFile     string `json:"log_file"`
	} `json:"app,omitempty"`

	Adapter struct {
		Address        string   `json:"address"`
		RequestTimeout Duration `json:"request_timeout"`
		RetryCount     int      `json:"retry_count"`
		ProxyMode      bool     `json:"proxy_mode"`
		Token          string   `json:"token"`
	} `json:"adapter,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
		AssetsDir string `json:"assets_dir"`
	} `json:"storage,omitempty"`

	Workers struct {
		SyncInterval Duration `json:"sync_interval"`
		Concurrency  int      `json:"concurrency"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			ID:          jsonCfg.App.ID,
			Locale:      jsonCfg.App.Locale,
			FHIRBaseURL: jsonCfg.App.FHIRBaseURL,
			Version:     jsonCfg.App.Version,
			LogFile:     jsonCfg.App.LogFile,
		},
		Adapter: Adapter{
			Address:        jsonCfg.Adapter.Address,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			RetryCount:     jsonCfg.Adapter.RetryCount,
			ProxyMode:      jsonCfg.Adapter.ProxyMode,
			Token:          jsonCfg.Adapter.Token,
		},
		Storage: Storage{
			DB:        DB{DSN: jsonCfg.Storage.DB.DSN},
			AssetsDir: jsonCfg.Storage.AssetsDir,
		},
		Workers: Workers{
			SyncInterval: time.Duration(jsonCfg.Workers.SyncInterval),
			Concurrency:  jsonCfg.Workers.Concurrency,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
