package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/RestoLoyalty_Go/internal/config"
	"github.com/osse101/RestoLoyalty_Go/internal/domain"
	"github.com/osse101/RestoLoyalty_Go/internal/event"
	"github.com/osse101/RestoLoyalty_Go/internal/eventlog"
)

func memoryConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		StorageBackend:         config.StorageBackendMemory,
		LogDir:                 filepath.Join(dir, "logs"),
		LogLevel:               "debug",
		LogFormat:              "text",
		Environment:            "test",
		EventDeadLetterPath:    filepath.Join(dir, "dl", "events.jsonl"),
		EventMaxRetries:        1,
		EventRetryDelay:        time.Millisecond,
		BoosterSweepInterval:   time.Hour,
		SessionCleanupInterval: time.Hour,
		EventLogRetentionDays:  30,
		WorkerCount:            1,
		WorkerQueueSize:        4,
	}
}

func TestCleanupLogs(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"service_2026-01-01_00-00-00.log",
		"service_2026-01-02_00-00-00.log",
		"service_2026-01-03_00-00-00.log",
		"notes.txt",
	}
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, 0o644))
	}

	cleanupLogs(dir, 2)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var left []string
	for _, e := range entries {
		left = append(left, e.Name())
	}
	assert.ElementsMatch(t, []string{
		"service_2026-01-02_00-00-00.log",
		"service_2026-01-03_00-00-00.log",
		"notes.txt",
	}, left)
}

func TestSetupLogger(t *testing.T) {
	cfg := memoryConfig(t)

	f, err := SetupLogger(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	assert.FileExists(t, f.Name())
	assert.Equal(t, cfg.LogDir, filepath.Dir(f.Name()))
}

func TestInitializeRepositories_Memory(t *testing.T) {
	repos, err := InitializeRepositories(context.Background(), memoryConfig(t))
	require.NoError(t, err)

	assert.Nil(t, repos.DBPool)
	assert.Nil(t, repos.Pinger())
	assert.NotNil(t, repos.Loyalty)
	assert.NotNil(t, repos.Sessions)
	assert.NotNil(t, repos.EventLog)

	quests, err := repos.Loyalty.ListQuests(context.Background(), true)
	require.NoError(t, err)
	assert.NotEmpty(t, quests, "memory store is seeded with the default catalog")

	repos.Close()
}

func TestEventSystem_PersistsPublishedEvents(t *testing.T) {
	cfg := memoryConfig(t)
	repos, err := InitializeRepositories(context.Background(), cfg)
	require.NoError(t, err)

	es, err := InitializeEventSystem(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = es.Publisher.Shutdown(context.Background()) })
	assert.DirExists(t, filepath.Dir(cfg.EventDeadLetterPath))

	events := eventlog.NewService(repos.EventLog)
	require.NoError(t, es.Subscribe(events))

	es.Publisher.PublishWithRetry(context.Background(), event.NewQuestCompletedEvent("user-1", 7))

	require.Eventually(t, func() bool {
		got, err := events.RecentForUser(context.Background(), "user-1", nil, 10)
		return err == nil && len(got) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestStartMaintenance_AndShutdown(t *testing.T) {
	cfg := memoryConfig(t)
	repos, err := InitializeRepositories(context.Background(), cfg)
	require.NoError(t, err)

	es, err := InitializeEventSystem(cfg)
	require.NoError(t, err)

	m, err := StartMaintenance(cfg, repos, eventlog.NewService(repos.EventLog))
	require.NoError(t, err)
	require.NotNil(t, m.Pool)
	require.NotNil(t, m.Scheduler)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, m.Scheduler.Stop())
	m.Pool.Stop()
	assert.NoError(t, es.Publisher.Shutdown(ctx))
}

func TestSeedCatalog_Idempotent(t *testing.T) {
	repos, err := InitializeRepositories(context.Background(), memoryConfig(t))
	require.NoError(t, err)

	catalog, err := LoadCatalog("")
	require.NoError(t, err)
	require.NoError(t, SeedCatalog(context.Background(), repos.Loyalty, catalog))

	quests, err := repos.Loyalty.ListQuests(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, quests, 3)

	items, err := repos.Loyalty.ListShopItems(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, items, 3)

	var boosters int
	for _, it := range items {
		if it.Type == domain.ItemTypeBoosters {
			boosters++
			assert.JSONEq(t, `{"description": "`+map[string]string{
				"XP Overdrive (24h)":  "Double XP pendant 24h",
				"Protocol Hack (12h)": "+50% sur les récompenses pendant 12h",
			}[it.Name]+`"}`, string(it.Metadata))
		}
	}
	assert.Equal(t, 2, boosters)
}

func TestLoadCatalog_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
quests:
  - title: Brunch
    reward_type: TOKEN
    reward_amount: 5
    required_progress: 2
    inactive: true
items:
  - name: Café offert
    type: Perks
    price: 15
`), 0o644))

	catalog, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, catalog.Quests, 1)
	require.Len(t, catalog.Items, 1)
	assert.True(t, catalog.Quests[0].Inactive)

	cfg := memoryConfig(t)
	cfg.CatalogFile = path
	repos, err := InitializeRepositories(context.Background(), cfg)
	require.NoError(t, err)

	active, err := repos.Loyalty.ListQuests(context.Background(), true)
	require.NoError(t, err)
	assert.Empty(t, active)
	items, err := repos.Loyalty.ListShopItems(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Café offert", items[0].Name)
	assert.Empty(t, items[0].Metadata)
}

func TestLoadCatalog_Errors(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, ErrMsgFailedLoadCatalog)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("quests:\n  - title: X\n    reward_type: GOLD\n"), 0o644))
	_, err = LoadCatalog(path)
	assert.ErrorContains(t, err, "GOLD")
}

func TestInitializeEventSystem_ToleratesLeftoverDeadLetters(t *testing.T) {
	cfg := memoryConfig(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.EventDeadLetterPath), DirPermission))
	w, err := event.NewDeadLetterWriter(cfg.EventDeadLetterPath)
	require.NoError(t, err)
	require.NoError(t, w.Write(event.NewQuestCompletedEvent("user-1", 1), 3, nil))
	require.NoError(t, w.Close())

	es, err := InitializeEventSystem(cfg)
	require.NoError(t, err)
	require.NoError(t, es.Publisher.Shutdown(context.Background()))

	entries, err := event.ReadDeadLetters(cfg.EventDeadLetterPath)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "startup leaves existing entries in place")
}
