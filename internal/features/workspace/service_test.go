package workspace

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	common_models "go-dashboards/internal/common/models"
	"go-dashboards/internal/config"
	"go-dashboards/internal/features/dashboard"
	"go-dashboards/internal/features/datasource"
	"go-dashboards/internal/features/widget"

	"go.uber.org/zap"
)

type fakeRepo struct {
	mu        sync.Mutex
	stored    map[string][]dashboard.Dashboard
	updatedAt time.Time
	loadErr   error
	saveErr   error
	savedCh   chan struct{}
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		stored:  map[string][]dashboard.Dashboard{},
		savedCh: make(chan struct{}, 8),
	}
}

func (f *fakeRepo) Load(ctx context.Context, userID string) ([]dashboard.Dashboard, time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, time.Time{}, f.loadErr
	}
	dashboards, ok := f.stored[userID]
	if !ok {
		return nil, time.Time{}, ErrNoWorkspace
	}
	return dashboards, f.updatedAt, nil
}

func (f *fakeRepo) Save(ctx context.Context, userID string, dashboards []dashboard.Dashboard) (time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return time.Time{}, f.saveErr
	}
	f.stored[userID] = dashboards
	f.updatedAt = time.Now()
	select {
	case f.savedCh <- struct{}{}:
	default:
	}
	return f.updatedAt, nil
}

func (f *fakeRepo) LastUpdate(ctx context.Context, userID string) (time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.stored[userID]; !ok {
		return time.Time{}, ErrNoWorkspace
	}
	return f.updatedAt, nil
}

func (f *fakeRepo) waitForSave(t *testing.T) {
	t.Helper()
	select {
	case <-f.savedCh:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for background save")
	}
}

type fakeAudit struct{}

func (fakeAudit) LogChange(ctx context.Context, action common_models.AuditAction, entity, recordID string, changes map[string]common_models.Change) error {
	return nil
}

func (fakeAudit) ListLogs(ctx context.Context, filters map[string]interface{}, page, limit int64) ([]common_models.AuditLog, error) {
	return nil, nil
}

type noopNotifier struct{}

func (noopNotifier) Publish(topic, event string, payload any) {}

type fakePages struct {
	owned  []dashboard.StoredDashboard
	shared map[string]*dashboard.StoredDashboard
	public map[string]*dashboard.StoredDashboard
}

func (f *fakePages) ListDashboards(ctx context.Context, userID string) ([]dashboard.StoredDashboard, error) {
	return f.owned, nil
}

func (f *fakePages) GetDashboard(ctx context.Context, id, userID string) (*dashboard.StoredDashboard, error) {
	if d, ok := f.shared[id]; ok {
		return d, nil
	}
	return nil, errors.New("access denied")
}

func (f *fakePages) GetPublicDashboard(ctx context.Context, slug string) (*dashboard.StoredDashboard, error) {
	if d, ok := f.public[slug]; ok {
		return d, nil
	}
	return nil, errors.New("not found")
}

func newTestService(t *testing.T, repo WorkspaceRepository) WorkspaceService {
	t.Helper()
	cfg := &config.Config{DataDir: t.TempDir(), BootTimeout: 1}
	return NewWorkspaceService(repo, &fakePages{}, NewMirror(cfg), datasource.NewResolver(), fakeAudit{}, noopNotifier{}, cfg, zap.NewNop())
}

func samplePages() []dashboard.Dashboard {
	return []dashboard.Dashboard{
		{ID: "p1", Name: "Main", Widgets: []widget.Widget{
			{ID: "w1", Type: widget.TypeText, Title: "Nota", Config: map[string]any{"text": "olá"}},
		}},
	}
}

func TestLoadFromStore(t *testing.T) {
	repo := newFakeRepo()
	repo.stored["user-1"] = samplePages()
	repo.updatedAt = time.Now()

	svc := newTestService(t, repo)
	result, err := svc.Load(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if result.Source != SourceRemote {
		t.Errorf("source = %q, want %q", result.Source, SourceRemote)
	}
	if !result.Online {
		t.Error("expected online after a store load")
	}
	if result.Workspace.ActiveID != "p1" {
		t.Errorf("active id = %q, want first page", result.Workspace.ActiveID)
	}
}

func TestLoadFallsBackToMirror(t *testing.T) {
	repo := newFakeRepo()
	repo.loadErr = errors.New("connection refused")

	cfg := &config.Config{DataDir: t.TempDir(), BootTimeout: 1}
	mirror := NewMirror(cfg)
	if err := mirror.Save("user-1", samplePages()); err != nil {
		t.Fatal(err)
	}

	svc := NewWorkspaceService(repo, &fakePages{}, mirror, datasource.NewResolver(), fakeAudit{}, noopNotifier{}, cfg, zap.NewNop())
	result, err := svc.Load(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if result.Source != SourceMirror {
		t.Errorf("source = %q, want %q", result.Source, SourceMirror)
	}
	if result.Online {
		t.Error("expected offline after a failed store load")
	}
	if len(result.Workspace.Dashboards) != 1 {
		t.Errorf("expected mirrored page, got %d pages", len(result.Workspace.Dashboards))
	}
}

func TestLoadFallsBackToPresets(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(t, repo)

	result, err := svc.Load(context.Background(), "fresh-user")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if result.Source != SourcePresets {
		t.Errorf("source = %q, want %q", result.Source, SourcePresets)
	}
	if len(result.Workspace.Dashboards) != 3 {
		t.Errorf("expected 3 preset pages, got %d", len(result.Workspace.Dashboards))
	}

	// Presets are persisted so the next boot finds real state.
	repo.waitForSave(t)
	stored, _, err := repo.Load(context.Background(), "fresh-user")
	if err != nil {
		t.Fatalf("presets were not persisted: %v", err)
	}
	if len(stored) != 3 {
		t.Errorf("stored %d pages, want 3", len(stored))
	}
}

func TestSaveShortCircuitsWhenUnchanged(t *testing.T) {
	repo := newFakeRepo()
	repo.stored["user-1"] = samplePages()
	repo.updatedAt = time.Now()

	cfg := &config.Config{DataDir: t.TempDir(), BootTimeout: 1}
	mirror := NewMirror(cfg)
	svc := NewWorkspaceService(repo, &fakePages{}, mirror, datasource.NewResolver(), fakeAudit{}, noopNotifier{}, cfg, zap.NewNop())

	result, err := svc.Save(context.Background(), "user-1", samplePages())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if result.Status != "unchanged" {
		t.Errorf("status = %q, want unchanged", result.Status)
	}

	// The mirror is only written for a real change.
	if mirrored, _ := mirror.Load("user-1"); mirrored != nil {
		t.Error("unchanged save should not touch the mirror")
	}
}

func TestSaveWritesThroughMirrorAndStore(t *testing.T) {
	repo := newFakeRepo()
	cfg := &config.Config{DataDir: t.TempDir(), BootTimeout: 1}
	mirror := NewMirror(cfg)
	svc := NewWorkspaceService(repo, &fakePages{}, mirror, datasource.NewResolver(), fakeAudit{}, noopNotifier{}, cfg, zap.NewNop())

	result, err := svc.Save(context.Background(), "user-1", samplePages())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if result.Status != "synced" {
		t.Errorf("status = %q, want synced", result.Status)
	}

	mirrored, err := mirror.Load("user-1")
	if err != nil || len(mirrored) != 1 {
		t.Errorf("mirror not written: %v pages, err %v", len(mirrored), err)
	}

	repo.waitForSave(t)
	stored, _, err := repo.Load(context.Background(), "user-1")
	if err != nil || len(stored) != 1 {
		t.Errorf("store not written: %d pages, err %v", len(stored), err)
	}
}

func TestSaveNilBecomesEmptyArray(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(t, repo)

	if _, err := svc.Save(context.Background(), "user-1", nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	repo.waitForSave(t)

	stored, _, err := repo.Load(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if stored == nil {
		t.Error("nil payload should be stored as an empty array")
	}
}

func TestImportRejectsNonArray(t *testing.T) {
	svc := newTestService(t, newFakeRepo())

	tests := []struct {
		name    string
		payload string
	}{
		{"object", `{"dashboards": []}`},
		{"scalar", `42`},
		{"garbage", `{not json`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Import(context.Background(), "user-1", []byte(tt.payload)); err == nil {
				t.Error("expected an error for a non-array payload")
			}
		})
	}
}

func TestImportReplacesWorkspace(t *testing.T) {
	repo := newFakeRepo()
	repo.stored["user-1"] = samplePages()
	svc := newTestService(t, repo)

	payload := []byte(`[{"id":"new","name":"Imported","widgets":[]}]`)
	result, err := svc.Import(context.Background(), "user-1", payload)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if result.Status != "synced" {
		t.Errorf("status = %q, want synced", result.Status)
	}

	repo.waitForSave(t)
	stored, _, _ := repo.Load(context.Background(), "user-1")
	if len(stored) != 1 || stored[0].Name != "Imported" {
		t.Errorf("import did not replace the workspace: %+v", stored)
	}
}

func TestAddPageNamesSequentially(t *testing.T) {
	repo := newFakeRepo()
	repo.stored["user-1"] = samplePages()
	svc := newTestService(t, repo)

	resp, err := svc.AddPage(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("AddPage: %v", err)
	}
	if resp.Added.Name != "Dashboard 2" {
		t.Errorf("added page name = %q, want Dashboard 2", resp.Added.Name)
	}
	if len(resp.Dashboards) != 2 {
		t.Errorf("expected 2 pages after add, got %d", len(resp.Dashboards))
	}
}

func TestLoadAssemblesWorkspaceFromOwnedDashboards(t *testing.T) {
	repo := newFakeRepo()
	cfg := &config.Config{DataDir: t.TempDir(), BootTimeout: 1}
	pages := &fakePages{owned: []dashboard.StoredDashboard{
		{ID: "d1", Name: "Vendas", Data: dashboard.Dashboard{ID: "d1", Name: "Vendas"}},
		{ID: "d2", Name: "Macro", Data: dashboard.Dashboard{ID: "d2", Name: "Macro"}},
	}}
	svc := NewWorkspaceService(repo, pages, NewMirror(cfg), datasource.NewResolver(), fakeAudit{}, noopNotifier{}, cfg, zap.NewNop())

	result, err := svc.Load(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if result.Source != SourceRemote {
		t.Errorf("source = %q, want %q", result.Source, SourceRemote)
	}
	if len(result.Workspace.Dashboards) != 2 {
		t.Fatalf("expected 2 pages from owned dashboards, got %d", len(result.Workspace.Dashboards))
	}
	if result.Workspace.ActiveID != "d1" {
		t.Errorf("active id = %q, want d1", result.Workspace.ActiveID)
	}
}

func TestLoadShared(t *testing.T) {
	repo := newFakeRepo()
	cfg := &config.Config{DataDir: t.TempDir(), BootTimeout: 1}
	stored := &dashboard.StoredDashboard{
		ID: "d1", Name: "Compartilhado",
		Data: dashboard.Dashboard{ID: "d1", Name: "Compartilhado"},
	}
	pages := &fakePages{
		shared: map[string]*dashboard.StoredDashboard{"d1": stored},
		public: map[string]*dashboard.StoredDashboard{"abc123": stored},
	}
	svc := NewWorkspaceService(repo, pages, NewMirror(cfg), datasource.NewResolver(), fakeAudit{}, noopNotifier{}, cfg, zap.NewNop())

	byID, err := svc.LoadShared(context.Background(), "user-1", "d1", "")
	if err != nil {
		t.Fatalf("LoadShared by id: %v", err)
	}
	if len(byID.Workspace.Dashboards) != 1 || byID.Workspace.ActiveID != "d1" {
		t.Errorf("shared load by id got %+v", byID.Workspace)
	}

	bySlug, err := svc.LoadShared(context.Background(), "user-1", "", "abc123")
	if err != nil {
		t.Fatalf("LoadShared by slug: %v", err)
	}
	if len(bySlug.Workspace.Dashboards) != 1 {
		t.Errorf("shared load by slug got %+v", bySlug.Workspace)
	}

	if _, err := svc.LoadShared(context.Background(), "user-1", "unknown", ""); err == nil {
		t.Error("expected an error for an inaccessible dashboard")
	}
}

func TestDeletePageReportsNextActive(t *testing.T) {
	repo := newFakeRepo()
	repo.stored["user-1"] = []dashboard.Dashboard{
		{ID: "p1", Name: "A"}, {ID: "p2", Name: "B"},
	}
	svc := newTestService(t, repo)

	resp, err := svc.DeletePage(context.Background(), "user-1", "p2", "p2")
	if err != nil {
		t.Fatalf("DeletePage: %v", err)
	}
	if len(resp.Dashboards) != 1 {
		t.Errorf("expected 1 page left, got %d", len(resp.Dashboards))
	}
	if resp.NextActive != "p1" {
		t.Errorf("next active = %q, want p1", resp.NextActive)
	}
}
