package workspace

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	common_models "go-dashboards/internal/common/models"
	"go-dashboards/internal/config"
	"go-dashboards/internal/features/audit"
	"go-dashboards/internal/features/dashboard"
	"go-dashboards/internal/features/datasource"
	"go-dashboards/internal/features/widget"

	"go.uber.org/zap"
)

type WorkspaceService interface {
	Load(ctx context.Context, userID string) (*LoadResult, error)
	LoadShared(ctx context.Context, userID, dashboardID, slug string) (*LoadResult, error)
	Save(ctx context.Context, userID string, dashboards []dashboard.Dashboard) (*SaveResult, error)
	LastUpdate(ctx context.Context, userID string) (*LastUpdateInfo, error)
	Export(ctx context.Context, userID string) ([]byte, error)
	Import(ctx context.Context, userID string, payload []byte) (*SaveResult, error)
	AddPage(ctx context.Context, userID string) (*AddPageResponse, error)
	RenamePage(ctx context.Context, userID, pageID, name string) error
	DeletePage(ctx context.Context, userID, pageID, activeID string) (*DeletePageResponse, error)
}

// Notifier tells a user's other sessions that the workspace changed.
// Topics are user ids.
type Notifier interface {
	Publish(topic, event string, payload any)
}

// PageDirectory is the slice of the dashboard service the workspace needs
// for deep links and the owned-pages boot step.
type PageDirectory interface {
	ListDashboards(ctx context.Context, userID string) ([]dashboard.StoredDashboard, error)
	GetDashboard(ctx context.Context, id, userID string) (*dashboard.StoredDashboard, error)
	GetPublicDashboard(ctx context.Context, slug string) (*dashboard.StoredDashboard, error)
}

type WorkspaceServiceImpl struct {
	Repo         WorkspaceRepository
	Pages        PageDirectory
	Mirror       *Mirror
	Resolver     datasource.Resolver
	AuditService audit.AuditService
	Notifier     Notifier
	Logger       *zap.Logger

	bootTimeout time.Duration
	online      atomic.Bool
}

func NewWorkspaceService(
	repo WorkspaceRepository,
	pages PageDirectory,
	mirror *Mirror,
	resolver datasource.Resolver,
	auditService audit.AuditService,
	notifier Notifier,
	cfg *config.Config,
	logger *zap.Logger,
) WorkspaceService {
	s := &WorkspaceServiceImpl{
		Repo:         repo,
		Pages:        pages,
		Mirror:       mirror,
		Resolver:     resolver,
		AuditService: auditService,
		Notifier:     notifier,
		Logger:       logger,
		bootTimeout:  time.Duration(cfg.BootTimeout) * time.Second,
	}
	s.online.Store(true)
	return s
}

// Load restores a user's workspace through the boot fallback chain: the
// database first under a hard timeout, then the local mirror, then the
// preset pages. Presets are written through immediately so the next boot
// finds real state.
func (s *WorkspaceServiceImpl) Load(ctx context.Context, userID string) (*LoadResult, error) {
	bootCtx, cancel := context.WithTimeout(ctx, s.bootTimeout)
	defer cancel()

	dashboards, updatedAt, err := s.Repo.Load(bootCtx, userID)
	if err == nil && len(dashboards) > 0 {
		s.online.Store(true)
		return &LoadResult{
			Workspace: Workspace{Dashboards: dashboards, ActiveID: firstID(dashboards)},
			Source:    SourceRemote,
			Online:    true,
			UpdatedAt: updatedAt,
		}, nil
	}
	if err != nil && !errors.Is(err, ErrNoWorkspace) {
		s.online.Store(false)
		s.Logger.Warn("workspace load from store failed, falling back", zap.Error(err))
	}

	// A user without a legacy workspace row may still own standalone
	// dashboards; those become the workspace.
	if errors.Is(err, ErrNoWorkspace) {
		if owned, lerr := s.Pages.ListDashboards(bootCtx, userID); lerr == nil && len(owned) > 0 {
			pages := make([]dashboard.Dashboard, len(owned))
			for i, stored := range owned {
				pages[i] = pageOf(&stored)
			}
			s.online.Store(true)
			return &LoadResult{
				Workspace: Workspace{Dashboards: pages, ActiveID: firstID(pages)},
				Source:    SourceRemote,
				Online:    true,
			}, nil
		}
	}

	if fromMirror, merr := s.Mirror.Load(userID); merr == nil && len(fromMirror) > 0 {
		return &LoadResult{
			Workspace: Workspace{Dashboards: fromMirror, ActiveID: firstID(fromMirror)},
			Source:    SourceMirror,
			Online:    s.online.Load(),
		}, nil
	}

	presets := PresetDashboards(s.Resolver)
	if _, err := s.Save(ctx, userID, presets); err != nil {
		s.Logger.Warn("failed to persist preset workspace", zap.Error(err))
	}
	return &LoadResult{
		Workspace: Workspace{Dashboards: presets, ActiveID: firstID(presets)},
		Source:    SourcePresets,
		Online:    s.online.Load(),
	}, nil
}

// LoadShared serves the deep-link entry points: a dashboard id the caller
// can view, or a public slug which bypasses ownership entirely. The result
// is a one-page workspace.
func (s *WorkspaceServiceImpl) LoadShared(ctx context.Context, userID, dashboardID, slug string) (*LoadResult, error) {
	var stored *dashboard.StoredDashboard
	var err error
	if slug != "" {
		stored, err = s.Pages.GetPublicDashboard(ctx, slug)
	} else {
		stored, err = s.Pages.GetDashboard(ctx, dashboardID, userID)
	}
	if err != nil {
		return nil, err
	}

	page := pageOf(stored)
	return &LoadResult{
		Workspace: Workspace{Dashboards: []dashboard.Dashboard{page}, ActiveID: page.ID},
		Source:    SourceRemote,
		Online:    s.online.Load(),
		UpdatedAt: stored.UpdatedAt,
	}, nil
}

// Save writes through: the mirror synchronously, the database in the
// background. A payload identical to what the store already holds is
// acknowledged without touching either.
func (s *WorkspaceServiceImpl) Save(ctx context.Context, userID string, dashboards []dashboard.Dashboard) (*SaveResult, error) {
	if dashboards == nil {
		dashboards = []dashboard.Dashboard{}
	}

	current, updatedAt, err := s.Repo.Load(ctx, userID)
	if err == nil && dashboard.DashboardsEqual(current, dashboards) {
		return &SaveResult{Status: "unchanged", Online: s.online.Load(), UpdatedAt: updatedAt}, nil
	}

	if err := s.Mirror.Save(userID, dashboards); err != nil {
		return nil, err
	}

	now := time.Now()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if _, err := s.Repo.Save(ctx, userID, dashboards); err != nil {
			s.online.Store(false)
			s.Logger.Warn("workspace sync to store failed, mirror holds state",
				zap.String("user_id", userID), zap.Error(err))
			return
		}
		s.online.Store(true)
		s.Notifier.Publish(userID, "workspace.saved", map[string]any{
			"pages": len(dashboards),
		})
	}()

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionWorkspace, "workspaces", userID, map[string]common_models.Change{
		"pages": {Old: len(current), New: len(dashboards)},
	})

	return &SaveResult{Status: "synced", Online: s.online.Load(), UpdatedAt: now}, nil
}

func (s *WorkspaceServiceImpl) LastUpdate(ctx context.Context, userID string) (*LastUpdateInfo, error) {
	t, err := s.Repo.LastUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &LastUpdateInfo{UpdatedAt: t}, nil
}

// Export renders the workspace as indented JSON, the shape importers expect.
func (s *WorkspaceServiceImpl) Export(ctx context.Context, userID string) ([]byte, error) {
	dashboards, _, err := s.Repo.Load(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrNoWorkspace) {
			return nil, err
		}
		dashboards = []dashboard.Dashboard{}
	}
	return json.MarshalIndent(dashboards, "", "  ")
}

// Import replaces the workspace with an uploaded export. The payload must
// be a JSON array of pages; anything else is rejected before any state
// changes.
func (s *WorkspaceServiceImpl) Import(ctx context.Context, userID string, payload []byte) (*SaveResult, error) {
	var probe any
	if err := json.Unmarshal(payload, &probe); err != nil {
		return nil, errors.New("invalid file: expected a dashboards array")
	}
	if _, ok := probe.([]any); !ok {
		return nil, errors.New("invalid file: expected a dashboards array")
	}

	var dashboards []dashboard.Dashboard
	if err := json.Unmarshal(payload, &dashboards); err != nil {
		return nil, errors.New("invalid file: expected a dashboards array")
	}

	result, err := s.Save(ctx, userID, dashboards)
	if err == nil {
		_ = s.AuditService.LogChange(ctx, common_models.AuditActionImport, "workspaces", userID, map[string]common_models.Change{
			"pages": {New: len(dashboards)},
		})
	}
	return result, err
}

func (s *WorkspaceServiceImpl) AddPage(ctx context.Context, userID string) (*AddPageResponse, error) {
	dashboards, _, err := s.Repo.Load(ctx, userID)
	if err != nil && !errors.Is(err, ErrNoWorkspace) {
		return nil, err
	}

	updated, added := dashboard.AddDashboard(dashboards)
	if _, err := s.Save(ctx, userID, updated); err != nil {
		return nil, err
	}
	return &AddPageResponse{Dashboards: updated, Added: added}, nil
}

func (s *WorkspaceServiceImpl) RenamePage(ctx context.Context, userID, pageID, name string) error {
	dashboards, _, err := s.Repo.Load(ctx, userID)
	if err != nil {
		return err
	}

	if err := dashboard.RenameDashboard(dashboards, pageID, name); err != nil {
		return err
	}
	_, err = s.Save(ctx, userID, dashboards)
	return err
}

func (s *WorkspaceServiceImpl) DeletePage(ctx context.Context, userID, pageID, activeID string) (*DeletePageResponse, error) {
	dashboards, _, err := s.Repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	remaining, nextActive := dashboard.RemoveDashboard(dashboards, pageID, activeID)
	if _, err := s.Save(ctx, userID, remaining); err != nil {
		return nil, err
	}
	return &DeletePageResponse{Dashboards: remaining, NextActive: nextActive}, nil
}

func firstID(dashboards []dashboard.Dashboard) string {
	if len(dashboards) == 0 {
		return ""
	}
	return dashboards[0].ID
}

func pageOf(stored *dashboard.StoredDashboard) dashboard.Dashboard {
	page := stored.Data
	page.ID = stored.ID
	if page.Name == "" {
		page.Name = stored.Name
	}
	if page.Widgets == nil {
		page.Widgets = []widget.Widget{}
	}
	return page
}
