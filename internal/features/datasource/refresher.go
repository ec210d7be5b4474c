package datasource

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go-dashboards/internal/database"
	"go-dashboards/internal/features/widget"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// resyncSchedule is how often the refresher re-scans the dashboards table to
// pick up widgets added, removed or reconfigured since the last sweep.
const resyncSchedule = "@every 60s"

// Refresher keeps live widgets fresh in the background. Every chart, table
// or kpi with a url source and refreshSeconds > 0 gets a cron entry, as does
// every kpi in code mode with a refresh interval. Fetch errors are swallowed
// and the last good value stays served.
type Refresher struct {
	resolver Resolver
	db       *sql.DB
	logger   *zap.Logger

	scheduler *cron.Cron

	mu      sync.RWMutex
	entries map[string]refreshEntry
	values  map[string]CachedValue
}

type refreshEntry struct {
	entryID  cron.EntryID
	identity string
}

func NewRefresher(pg *database.PostgresDB, resolver Resolver, logger *zap.Logger) *Refresher {
	return &Refresher{
		resolver: resolver,
		db:       pg.DB,
		logger:   logger,
		entries:  make(map[string]refreshEntry),
		values:   make(map[string]CachedValue),
	}
}

// Start performs an initial sync and schedules periodic re-scans.
func (r *Refresher) Start(ctx context.Context) error {
	r.scheduler = cron.New()

	if err := r.Sync(ctx); err != nil {
		r.logger.Warn("initial refresher sync failed", zap.Error(err))
	}

	if _, err := r.scheduler.AddFunc(resyncSchedule, func() {
		if err := r.Sync(context.Background()); err != nil {
			r.logger.Warn("refresher resync failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}

	r.scheduler.Start()
	r.logger.Info("data refresher started")
	return nil
}

// Stop halts the scheduler and waits for running jobs.
func (r *Refresher) Stop() {
	if r.scheduler != nil {
		<-r.scheduler.Stop().Done()
	}
}

// Value returns the last refreshed payload for a widget.
func (r *Refresher) Value(widgetID string) (CachedValue, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[widgetID]
	return v, ok
}

// Sync walks all stored dashboards and reconciles cron entries with the
// widgets that currently want background refresh. A widget whose descriptor
// identity changed is re-registered; widgets that vanished are dropped along
// with their cached values.
func (r *Refresher) Sync(ctx context.Context) error {
	targets, err := r.collectTargets(ctx)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]bool, len(targets))
	for widgetID, desc := range targets {
		seen[widgetID] = true

		if cur, ok := r.entries[widgetID]; ok {
			if cur.identity == desc.Identity() {
				continue
			}
			r.scheduler.Remove(cur.entryID)
			delete(r.entries, widgetID)
		}

		if err := r.register(widgetID, desc); err != nil {
			r.logger.Warn("failed to register refresh job",
				zap.String("widget_id", widgetID), zap.Error(err))
		}
	}

	for widgetID, entry := range r.entries {
		if !seen[widgetID] {
			r.scheduler.Remove(entry.entryID)
			delete(r.entries, widgetID)
			delete(r.values, widgetID)
		}
	}
	return nil
}

// register must run with mu held.
func (r *Refresher) register(widgetID string, desc Descriptor) error {
	spec := fmt.Sprintf("@every %ds", int(desc.RefreshSeconds))
	job := r.refreshJob(widgetID, desc)

	entryID, err := r.scheduler.AddFunc(spec, job)
	if err != nil {
		return err
	}
	r.entries[widgetID] = refreshEntry{entryID: entryID, identity: desc.Identity()}

	// Prime the cache so a freshly registered widget does not wait a full
	// interval for its first value.
	go job()
	return nil
}

func (r *Refresher) refreshJob(widgetID string, desc Descriptor) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		cached, err := r.resolveOnce(ctx, desc)
		if err != nil {
			r.logger.Debug("refresh tick failed, keeping last value",
				zap.String("widget_id", widgetID), zap.Error(err))
			return
		}

		r.mu.Lock()
		r.values[widgetID] = *cached
		r.mu.Unlock()
	}
}

func (r *Refresher) resolveOnce(ctx context.Context, desc Descriptor) (*CachedValue, error) {
	if desc.SourceType == widget.SourceCode {
		value, err := RunValueScript(ctx, desc.Code)
		if err != nil {
			return nil, err
		}
		return &CachedValue{Value: value, UpdatedAt: time.Now()}, nil
	}

	result, err := r.resolver.Resolve(ctx, desc)
	if err != nil {
		return nil, err
	}

	cached := &CachedValue{Rows: result.Rows, UpdatedAt: time.Now()}
	if desc.JSONPath != "" && result.Format == FormatJSON {
		var parsed any
		if json.Unmarshal([]byte(result.Raw), &parsed) == nil {
			cached.Value = GetByPath(parsed, desc.JSONPath)
		}
	} else if len(result.Rows) > 0 && len(result.Columns) > 0 {
		cached.Value = result.Rows[0][result.Columns[0]]
	}
	return cached, nil
}

// collectTargets scans every stored dashboard for widgets that want
// background refresh and returns them keyed by widget id.
func (r *Refresher) collectTargets(ctx context.Context) (map[string]Descriptor, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT data FROM dashboards`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	targets := make(map[string]Descriptor)
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}

		var page struct {
			Widgets []widget.Widget `json:"widgets"`
		}
		if err := json.Unmarshal(payload, &page); err != nil {
			continue
		}

		for _, w := range page.Widgets {
			desc, ok := refreshableDescriptor(w)
			if ok {
				targets[w.ID] = desc
			}
		}
	}
	return targets, rows.Err()
}

// refreshableDescriptor extracts a descriptor from a widget config and
// reports whether it qualifies for background refresh.
func refreshableDescriptor(w widget.Widget) (Descriptor, bool) {
	switch w.Type {
	case widget.TypeChart, widget.TypeTable, widget.TypeKPI:
	default:
		return Descriptor{}, false
	}

	cfg := w.Config
	if cfg == nil {
		return Descriptor{}, false
	}

	desc := Descriptor{
		SourceType: stringField(cfg, "sourceType"),
		URL:        stringField(cfg, "url"),
		Format:     stringField(cfg, "format"),
		JSONPath:   stringField(cfg, "jsonPath"),
		Code:       stringField(cfg, "code"),
	}
	if n, ok := cfg["refreshSeconds"].(float64); ok {
		desc.RefreshSeconds = n
	}
	if desc.RefreshSeconds <= 0 {
		return Descriptor{}, false
	}

	switch desc.SourceType {
	case widget.SourceURL:
		return desc, desc.URL != ""
	case widget.SourceCode:
		return desc, w.Type == widget.TypeKPI && desc.Code != ""
	}
	return Descriptor{}, false
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
