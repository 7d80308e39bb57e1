// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/opensrp/fhircore-configsync/internal/adapter"
	"github.com/opensrp/fhircore-configsync/internal/utils"
	"github.com/opensrp/fhircore-configsync/models"
)

// fakeFHIR: минимальный FHIR-сервер: поиск по _id / identifier, batch POST
// и раскрытие List в режиме шлюза.
type fakeFHIR struct {
	mu        sync.Mutex
	resources map[models.ResourceKey]models.Resource
	fail      map[string]int
	requests  []string
}

func newFakeFHIR(resources ...models.Resource) *fakeFHIR {
	f := &fakeFHIR{
		resources: make(map[models.ResourceKey]models.Resource),
		fail:      make(map[string]int),
	}
	for _, r := range resources {
		f.resources[r.Key()] = r
	}
	return f
}

// start запускает сервер и возвращает адрес FHIR base.
func (f *fakeFHIR) start(t *testing.T) string {
	t.Helper()

	r := chi.NewRouter()
	r.Post("/fhir", f.batch)
	r.Get("/fhir/{resourceType}", f.search)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv.URL + "/fhir"
}

func (f *fakeFHIR) failType(resourceType string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[resourceType] = status
}

func (f *fakeFHIR) log() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func (f *fakeFHIR) record(entry, resourceType string) (int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, entry)
	status, failed := f.fail[resourceType]
	return status, failed
}

func (f *fakeFHIR) get(key models.ResourceKey) (models.Resource, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.resources[key]
	if !ok {
		return nil, false
	}
	return r.Clone(), true
}

func (f *fakeFHIR) search(w http.ResponseWriter, r *http.Request) {
	resourceType := chi.URLParam(r, "resourceType")
	if status, failed := f.record("GET "+resourceType, resourceType); failed {
		w.WriteHeader(status)
		return
	}

	bundle := models.Bundle{ResourceType: models.ResourceTypeBundle, Type: models.BundleTypeSearchSet}
	gateway := r.Header.Get(adapter.GatewayModeHeader) == adapter.GatewayModeListEntries

	if resourceType == models.ResourceTypeComposition {
		identifier := r.URL.Query().Get("identifier")
		f.mu.Lock()
		for _, res := range f.resources {
			if res.ResourceType() != resourceType {
				continue
			}
			if ident, ok := res["identifier"].(map[string]any); ok && ident["value"] == identifier {
				bundle.Entry = append(bundle.Entry, entryOf(res))
			}
		}
		f.mu.Unlock()
		_, _ = writeFHIRJSON(w, bundle, http.StatusOK)
		return
	}

	for _, id := range strings.Split(r.URL.Query().Get("_id"), ",") {
		res, ok := f.get(models.ResourceKey{Type: resourceType, ID: id})
		if !ok {
			continue
		}
		bundle.Entry = append(bundle.Entry, entryOf(res))
		if gateway && resourceType == models.ResourceTypeList {
			bundle.Entry = append(bundle.Entry, entryOf(f.expand(res)))
		}
	}

	_, _ = writeFHIRJSON(w, bundle, http.StatusOK)
}

// expand returns a searchset of the List members, nested Lists expanded in
// place.
func (f *fakeFHIR) expand(list models.Resource) *models.Bundle {
	nested := &models.Bundle{ResourceType: models.ResourceTypeBundle, Type: models.BundleTypeSearchSet}

	var l models.ListResource
	_ = list.Decode(&l)
	for _, entry := range l.Entry {
		key, err := entry.Item.Key()
		if err != nil {
			continue
		}
		member, ok := f.get(key)
		if !ok {
			continue
		}
		nested.Entry = append(nested.Entry, entryOf(member))
		if member.ResourceType() == models.ResourceTypeList {
			nested.Entry = append(nested.Entry, entryOf(f.expand(member)))
		}
	}
	return nested
}

func (f *fakeFHIR) batch(w http.ResponseWriter, r *http.Request) {
	var req models.Bundle
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Entry) == 0 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	first, _ := models.ParseReference(req.Entry[0].Request.URL)
	if status, failed := f.record("POST "+first.Type, first.Type); failed {
		w.WriteHeader(status)
		return
	}

	resp := models.Bundle{ResourceType: models.ResourceTypeBundle, Type: models.BundleTypeBatchResponse}
	for _, entry := range req.Entry {
		key, err := models.ParseReference(entry.Request.URL)
		res, ok := f.get(key)
		if err != nil || !ok {
			resp.Entry = append(resp.Entry, models.BundleEntry{Response: &models.BundleResponse{Status: "404 Not Found"}})
			continue
		}
		e := entryOf(res)
		e.Response = &models.BundleResponse{Status: "200 OK"}
		resp.Entry = append(resp.Entry, e)
	}

	_, _ = writeFHIRJSON(w, resp, http.StatusOK)
}

func entryOf(v any) models.BundleEntry {
	raw, _ := json.Marshal(v)
	return models.BundleEntry{Resource: raw}
}

// ── fixtures ────────────────────────────────────────────────────────────────

func binary(id, payload string) models.Resource {
	return models.Resource{
		"resourceType": "Binary",
		"id":           id,
		"contentType":  "application/json",
		"data":         base64.StdEncoding.EncodeToString([]byte(payload)),
	}
}

func resource(resourceType, id string, fields ...string) models.Resource {
	r := models.Resource{"resourceType": resourceType, "id": id}
	for i := 0; i+1 < len(fields); i += 2 {
		r[fields[i]] = fields[i+1]
	}
	return r
}

func list(id string, members ...string) models.Resource {
	entries := make([]any, 0, len(members))
	for _, m := range members {
		entries = append(entries, map[string]any{"item": map[string]any{"reference": m}})
	}
	return models.Resource{"resourceType": "List", "id": id, "entry": entries}
}

func composition(identifier string, sections ...models.Section) models.Resource {
	r, _ := models.NewResource(models.Composition{
		ResourceType: models.ResourceTypeComposition,
		ID:           "comp-" + identifier,
		Identifier:   &models.Identifier{Value: identifier},
		Section:      sections,
	})
	return r
}

// writeFHIRJSON отдаёт data как FHIR JSON с указанным статусом
func writeFHIRJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, err
	}

	w.Header().Set("Content-Type", utils.FHIRContentType)
	w.WriteHeader(statusCode)
	return w.Write(payload)
}
