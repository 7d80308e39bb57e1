// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opensrp/fhircore-configsync/internal/adapter"
	"github.com/opensrp/fhircore-configsync/internal/config"
	"github.com/opensrp/fhircore-configsync/internal/logger"
	"github.com/opensrp/fhircore-configsync/internal/registry"
	"github.com/opensrp/fhircore-configsync/internal/store"
	"github.com/opensrp/fhircore-configsync/models"
)

const (
	applicationPayload = `{"appId":"quest","configType":"application","appTitle":"{{app.title}}"}`
	registerPayload    = `{"appId":"quest","configType":"register","id":"householdRegister",` +
		`"fhirResource":{"baseResource":{"resource":"Group"},"relatedResources":[{"resource":"Patient"}]}}`
)

var storedTypes = []string{"Composition", "Binary", "Questionnaire", "StructureMap", "List", "Location", "Group", "Patient"}

type testEnv struct {
	svc      *configSyncService
	storages *store.Storages
	registry *registry.ConfigRegistry
}

func newTestEnv(t *testing.T, address string, proxyMode bool) *testEnv {
	t.Helper()

	cfg := config.SyncConfig{
		App: config.SyncApp{AppID: "quest", Locale: "en", FHIRBaseURL: "https://fhir.example.org/fhir"},
		Adapter: config.SyncAdapter{
			Address:        address,
			RequestTimeout: 5 * time.Second,
			ProxyMode:      proxyMode,
		},
		Storage: config.SyncStorage{DSN: ":memory:"},
		Workers: config.SyncWorkers{Concurrency: 4},
	}

	storages, err := store.NewStorages(context.Background(), cfg.Storage, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	source, err := adapter.NewFHIRDataSource(cfg.Adapter, logger.Nop())
	require.NoError(t, err)

	reg := registry.NewConfigRegistry(cfg.App.Locale, logger.Nop())
	svc := NewConfigSyncService(source, storages, reg, cfg, nil, logger.Nop()).(*configSyncService)

	return &testEnv{svc: svc, storages: storages, registry: reg}
}

func (e *testEnv) storedKeys(t *testing.T) []string {
	t.Helper()

	var keys []string
	for _, resourceType := range storedTypes {
		found, err := e.storages.Resources.Search(context.Background(), models.SearchQuery{ResourceType: resourceType})
		require.NoError(t, err)
		for _, r := range found {
			keys = append(keys, r.Reference())
		}
	}
	slices.Sort(keys)
	return keys
}

// appFixture: манифест со всеми видами секций.
func appFixture() *fakeFHIR {
	return newFakeFHIR(
		composition("quest",
			focusSection("Binary/bin-1", "application"),
			models.Section{Title: "registers", Section: []models.Section{
				focusSection("Binary/bin-reg", "household_register"),
			}},
			focusSection("Binary/bin-str", "strings_fr"),
			focusSection("Questionnaire/q-1", ""),
			focusSection("StructureMap/sm-1", ""),
			focusSection("List/l-1", ""),
			focusSection("Binary/ic-home", "ic_home"),
			focusSection("Patient/p-9", ""),
		),
		binary("bin-1", applicationPayload),
		binary("bin-reg", registerPayload),
		binary("bin-str", "app.title=Quête\n"),
		binary("ic-home", "<svg/>"),
		resource("Questionnaire", "q-1", "name", "HouseholdForm"),
		resource("StructureMap", "sm-1", "name", "HouseholdMap", "url", "http://maps.example.org/sm-1"),
		list("l-1", "Location/loc-1", "Location/loc-2", "List/l-2"),
		list("l-2", "Group/g-1"),
		resource("Location", "loc-1"),
		resource("Location", "loc-2"),
		resource("Group", "g-1"),
		resource("Patient", "p-9"),
	)
}

func indexes(log []string, entries ...string) []int {
	var out []int
	for i, l := range log {
		if slices.Contains(entries, l) {
			out = append(out, i)
		}
	}
	return out
}

func TestFetchRemoteConfigurations_Batched(t *testing.T) {
	fhir := appFixture()
	env := newTestEnv(t, fhir.start(t), false)

	var mu sync.Mutex
	var events []models.Progress
	progress := func(p models.Progress) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, p)
	}

	loaded, err := env.svc.FetchRemoteConfigurations(context.Background(), "quest/debug", progress)
	require.NoError(t, err)
	require.True(t, loaded)

	// конфигурации из Binary попали в реестр
	raw, ok := env.registry.RawConfig("application")
	require.True(t, ok)
	assert.Equal(t, applicationPayload, raw)
	_, ok = env.registry.RawConfig("householdRegister")
	assert.True(t, ok, "identifier is camelCased")
	_, ok = env.registry.RawConfig("icHome")
	assert.False(t, ok, "icons never become configurations")

	register, err := registry.RetrieveConfiguration[models.RegisterConfiguration](env.registry, models.ConfigTypeRegister, "householdRegister", nil)
	require.NoError(t, err)
	assert.Equal(t, "Group", register.FhirResource.BaseResource.Resource)

	env.svc.SetLocale("fr")
	app, err := registry.RetrieveConfiguration[models.ApplicationConfiguration](env.registry, models.ConfigTypeApplication, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "Quête", app.AppTitle)

	assert.Equal(t, []string{
		"Binary/bin-1", "Binary/bin-reg", "Binary/bin-str", "Binary/ic-home",
		"Composition/comp-quest",
		"Group/g-1",
		"List/l-1", "List/l-2",
		"Location/loc-1", "Location/loc-2",
		"Questionnaire/q-1",
		"StructureMap/sm-1",
	}, env.storedKeys(t))

	scope, err := env.svc.SyncScope(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Group", "Patient"}, scope)

	mu.Lock()
	assert.NotEmpty(t, events)
	for _, e := range events {
		assert.LessOrEqual(t, e.Completed, e.Total)
	}
	mu.Unlock()
}

func TestFetchRemoteConfigurations_StageOrder(t *testing.T) {
	fhir := appFixture()
	env := newTestEnv(t, fhir.start(t), false)

	loaded, err := env.svc.FetchRemoteConfigurations(context.Background(), "quest", nil)
	require.NoError(t, err)
	require.True(t, loaded)

	log := fhir.log()
	require.Equal(t, "GET Composition", log[0])

	lists := indexes(log, "POST List")
	manifest := indexes(log, "POST Binary")
	icons := indexes(log, "GET Binary")
	configs := indexes(log, "POST Questionnaire", "POST StructureMap")
	expansion := indexes(log, "GET Location", "GET Group")

	require.Len(t, lists, 2, "nested List resolved in a second wave")
	require.Len(t, manifest, 1)
	require.Len(t, icons, 1)
	require.Len(t, configs, 2)
	require.Len(t, expansion, 3, "one _id search per List member")

	assert.Less(t, slices.Max(lists), slices.Min(manifest))
	assert.Less(t, slices.Max(manifest), slices.Min(icons))
	assert.Less(t, slices.Max(icons), slices.Min(configs))
	assert.Less(t, slices.Max(configs), slices.Min(expansion))
	assert.NotContains(t, strings.Join(log, ","), "Patient")
}

func TestFetchRemoteConfigurations_ShapeEquivalence(t *testing.T) {
	batchedFHIR := appFixture()
	batched := newTestEnv(t, batchedFHIR.start(t), false)
	gatewayFHIR := appFixture()
	gateway := newTestEnv(t, gatewayFHIR.start(t), true)

	for _, env := range []*testEnv{batched, gateway} {
		loaded, err := env.svc.FetchRemoteConfigurations(context.Background(), "quest", nil)
		require.NoError(t, err)
		require.True(t, loaded)
	}

	assert.Equal(t, batched.storedKeys(t), gateway.storedKeys(t))
	assert.Equal(t, batched.registry.Keys(), gateway.registry.Keys())

	// шлюз раскрывает List на своей стороне: отдельных запросов за Location нет
	assert.Empty(t, indexes(gatewayFHIR.log(), "GET Location", "GET Group"))
	assert.Empty(t, indexes(gatewayFHIR.log(), "POST List", "POST Binary", "POST Questionnaire"))
}

func TestFetchRemoteConfigurations_Scenario(t *testing.T) {
	fhir := newFakeFHIR(
		composition("quest",
			focusSection("Binary/bin-1", "application"),
			focusSection("Questionnaire/q-1", ""),
			focusSection("Binary/ic-home", "ic_home"),
		),
		binary("bin-1", applicationPayload),
		binary("ic-home", "<svg/>"),
		resource("Questionnaire", "q-1"),
	)
	env := newTestEnv(t, fhir.start(t), false)

	loaded, err := env.svc.FetchRemoteConfigurations(context.Background(), "quest", nil)
	require.NoError(t, err)
	require.True(t, loaded)

	raw, ok := env.registry.RawConfig("application")
	require.True(t, ok)
	assert.Equal(t, applicationPayload, raw)

	assert.Equal(t, []string{"GET Composition", "POST Binary", "GET Binary", "POST Questionnaire"}, fhir.log())
	assert.Equal(t, []string{"application"}, env.registry.Keys())
}

func TestFetchRemoteConfigurations_ManifestFailures(t *testing.T) {
	tests := []struct {
		name         string
		resourceType string
		status       int
	}{
		{name: "composition not found", resourceType: "Composition", status: http.StatusNotFound},
		{name: "composition server error", resourceType: "Composition", status: http.StatusInternalServerError},
		{name: "manifest chunk fails", resourceType: "Binary", status: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fhir := appFixture()
			fhir.failType(tt.resourceType, tt.status)
			env := newTestEnv(t, fhir.start(t), false)

			loaded, err := env.svc.FetchRemoteConfigurations(context.Background(), "quest", nil)

			assert.False(t, loaded)
			assert.ErrorIs(t, err, ErrManifestUnavailable)
			assert.False(t, env.registry.IsLoaded(), "registry untouched on failure")

			scope, err := env.svc.SyncScope(context.Background())
			require.NoError(t, err)
			assert.Empty(t, scope)
		})
	}
}

func TestFetchRemoteConfigurations_ConfigChunkFailureIsDegraded(t *testing.T) {
	fhir := appFixture()
	fhir.failType("Questionnaire", http.StatusInternalServerError)
	env := newTestEnv(t, fhir.start(t), false)

	loaded, err := env.svc.FetchRemoteConfigurations(context.Background(), "quest", nil)
	require.NoError(t, err)
	assert.True(t, loaded)

	keys := env.storedKeys(t)
	assert.NotContains(t, keys, "Questionnaire/q-1")
	assert.Contains(t, keys, "StructureMap/sm-1", "sibling chunks still run")
	assert.Contains(t, keys, "Location/loc-1", "later stages still run")
}

func TestFetchRemoteConfigurations_Cancelled(t *testing.T) {
	fhir := appFixture()
	env := newTestEnv(t, fhir.start(t), false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// отмена во время первой стадии: запрос завершается, дальше не идём
	loaded, err := env.svc.FetchRemoteConfigurations(ctx, "quest", func(models.Progress) { cancel() })

	assert.False(t, loaded)
	assert.ErrorIs(t, err, ErrSyncCancelled)
	assert.False(t, env.registry.IsLoaded())
	assert.Equal(t, []string{"GET Composition", "POST List"}, fhir.log())
	assert.Contains(t, env.storedKeys(t), "List/l-1", "pages already fetched stay merged")
}

func TestFetchRemoteConfigurations_CancelledDuringLastStage(t *testing.T) {
	fhir := appFixture()
	env := newTestEnv(t, fhir.start(t), false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// отмена во время раскрытия элементов List: запуск не завершён
	progress := func(p models.Progress) {
		if p.Stage == models.StageListItemExpansion {
			cancel()
		}
	}

	loaded, err := env.svc.FetchRemoteConfigurations(ctx, "quest", progress)

	assert.False(t, loaded)
	assert.ErrorIs(t, err, ErrSyncCancelled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, env.registry.IsLoaded(), "registry is not swapped by a cancelled run")

	stored := env.storedKeys(t)
	assert.Contains(t, stored, "Binary/bin-1", "earlier stages stay merged")
	assert.NotContains(t, stored, "Composition/comp-quest")

	scope, err := env.svc.SyncScope(context.Background())
	require.NoError(t, err)
	assert.Empty(t, scope)
}

func TestFetchRemoteConfigurations_EmptyAppID(t *testing.T) {
	env := newTestEnv(t, "http://127.0.0.1:1/fhir", false)

	loaded, err := env.svc.FetchRemoteConfigurations(context.Background(), " /debug", nil)

	assert.False(t, loaded)
	assert.ErrorIs(t, err, ErrEmptyAppID)
}

func TestLoadConfigurations_FromLocalStorage(t *testing.T) {
	fhir := appFixture()
	env := newTestEnv(t, fhir.start(t), false)

	loaded, err := env.svc.FetchRemoteConfigurations(context.Background(), "quest", nil)
	require.NoError(t, err)
	require.True(t, loaded)

	// новый реестр поверх той же базы
	reg := registry.NewConfigRegistry("fr", logger.Nop())
	offline := *env.svc
	offline.registry = reg

	loaded, err = offline.LoadConfigurations(context.Background(), "quest/debug")
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.Equal(t, env.registry.Keys(), reg.Keys())

	app, err := registry.RetrieveConfiguration[models.ApplicationConfiguration](reg, models.ConfigTypeApplication, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "Quête", app.AppTitle)
}

func TestLoadConfigurations_NoManifest(t *testing.T) {
	env := newTestEnv(t, "http://127.0.0.1:1/fhir", false)

	loaded, err := env.svc.LoadConfigurations(context.Background(), "quest")

	assert.False(t, loaded)
	assert.ErrorIs(t, err, ErrConfigsNotLoaded)
}

func TestLoadLocalConfigurations(t *testing.T) {
	dir := t.TempDir()
	writeAsset(t, dir, "quest/composition_config.json", `{"resourceType":"Composition","id":"comp-quest"}`)
	writeAsset(t, dir, "quest/application_config.json", applicationPayload)
	writeAsset(t, dir, "quest/registers/household_register_config.json", registerPayload)
	writeAsset(t, dir, "quest/strings_fr_config.properties", "app.title=Quête\n")

	env := newTestEnv(t, "http://127.0.0.1:1/fhir", false)
	env.svc.assets = os.DirFS(dir)

	loaded, err := env.svc.LoadLocalConfigurations(context.Background(), "quest")
	require.NoError(t, err)
	require.True(t, loaded)
	assert.Equal(t, []string{"application", "householdRegister"}, env.registry.Keys())

	env.svc.SetLocale("fr")
	app, err := registry.RetrieveConfiguration[models.ApplicationConfiguration](env.registry, models.ConfigTypeApplication, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "Quête", app.AppTitle)

	loaded, err = env.svc.LoadLocalConfigurations(context.Background(), "eir")
	assert.False(t, loaded)
	assert.ErrorIs(t, err, ErrConfigsNotLoaded)
}

func TestLoadLocalConfigurations_NoAssetsDir(t *testing.T) {
	env := newTestEnv(t, "http://127.0.0.1:1/fhir", false)

	loaded, err := env.svc.LoadLocalConfigurations(context.Background(), "quest")

	assert.False(t, loaded)
	assert.ErrorIs(t, err, ErrConfigsNotLoaded)
}

func writeAsset(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestParseAppID(t *testing.T) {
	assert.Equal(t, "quest", ParseAppID("quest"))
	assert.Equal(t, "quest", ParseAppID(" quest/debug "))
	assert.Equal(t, "", ParseAppID("/debug"))
}
