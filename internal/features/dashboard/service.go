package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	common_models "go-dashboards/internal/common/models"
	"go-dashboards/internal/features/audit"
	"go-dashboards/internal/features/member"
	"go-dashboards/internal/features/widget"
	"go-dashboards/pkg/utils"
)

type DashboardService interface {
	CreateDashboard(ctx context.Context, userID string, req *CreateDashboardRequest) (*StoredDashboard, error)
	GetDashboard(ctx context.Context, id, userID string) (*StoredDashboard, error)
	GetPublicDashboard(ctx context.Context, slug string) (*StoredDashboard, error)
	ListDashboards(ctx context.Context, userID string) ([]StoredDashboard, error)
	SaveDashboard(ctx context.Context, id, userID string, data Dashboard) (*StoredDashboard, error)
	RenameDashboard(ctx context.Context, id, userID, name string) error
	DeleteDashboard(ctx context.Context, id, userID string) error
	Publish(ctx context.Context, id, userID string, public bool) (*StoredDashboard, error)

	AddWidget(ctx context.Context, id, userID string, w widget.Widget) (*widget.Widget, error)
	UpdateWidget(ctx context.Context, id, userID string, w widget.Widget) error
	DuplicateWidget(ctx context.Context, id, userID, widgetID string) (*widget.Widget, error)
	DeleteWidget(ctx context.Context, id, userID, widgetID string) error
	MoveWidget(ctx context.Context, id, userID, widgetID, direction string) error
	ResizeWidget(ctx context.Context, id, userID, widgetID string, width, height float64) error
	ReorderWidget(ctx context.Context, id, userID, widgetID, targetID string, before bool) error
}

// Notifier pushes change events to live viewers of a page. Topics are
// dashboard ids.
type Notifier interface {
	Publish(topic, event string, payload any)
}

type DashboardServiceImpl struct {
	DashboardRepo DashboardRepository
	MemberService member.MemberService
	AuditService  audit.AuditService
	Notifier      Notifier
}

func NewDashboardService(
	dashboardRepo DashboardRepository,
	memberService member.MemberService,
	auditService audit.AuditService,
	notifier Notifier,
) DashboardService {
	return &DashboardServiceImpl{
		DashboardRepo: dashboardRepo,
		MemberService: memberService,
		AuditService:  auditService,
		Notifier:      notifier,
	}
}

func (s *DashboardServiceImpl) CreateDashboard(ctx context.Context, userID string, req *CreateDashboardRequest) (*StoredDashboard, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		existing, err := s.DashboardRepo.ListForUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		pages := make([]Dashboard, len(existing))
		for i, e := range existing {
			pages[i] = Dashboard{ID: e.ID, Name: e.Name}
		}
		name = NextDashboardName(pages)
	}

	page := Dashboard{
		ID:      utils.NewID(),
		Name:    name,
		Widgets: []widget.Widget{},
	}
	for _, w := range req.Widgets {
		if err := s.validateWidget(&w); err != nil {
			return nil, err
		}
		page.AddWidget(w)
	}

	stored := &StoredDashboard{
		ID:      page.ID,
		OwnerID: userID,
		Name:    name,
		Data:    page,
	}
	if err := s.DashboardRepo.Create(ctx, stored); err != nil {
		return nil, err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionCreate, "dashboards", stored.ID, map[string]common_models.Change{
		"dashboard": {New: stored.Name},
	})
	return stored, nil
}

func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, id, userID string) (*StoredDashboard, error) {
	d, err := s.DashboardRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.IsPublic {
		return d, nil
	}
	ok, err := s.MemberService.CanView(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("access denied")
	}
	return d, nil
}

func (s *DashboardServiceImpl) GetPublicDashboard(ctx context.Context, slug string) (*StoredDashboard, error) {
	return s.DashboardRepo.GetBySlug(ctx, slug)
}

func (s *DashboardServiceImpl) ListDashboards(ctx context.Context, userID string) ([]StoredDashboard, error) {
	return s.DashboardRepo.ListForUser(ctx, userID)
}

// SaveDashboard replaces the full widget list of a page. Configs are
// normalized and source-cleared on the way in; a save that changes nothing
// skips the write entirely so updated_at stays put and pollers see no phantom
// update.
func (s *DashboardServiceImpl) SaveDashboard(ctx context.Context, id, userID string, data Dashboard) (*StoredDashboard, error) {
	if err := s.requireEditor(ctx, id, userID); err != nil {
		return nil, err
	}
	existing, err := s.DashboardRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	data.ID = id
	if strings.TrimSpace(data.Name) == "" {
		data.Name = existing.Name
	}
	for i := range data.Widgets {
		w := &data.Widgets[i]
		if err := s.validateWidget(w); err != nil {
			return nil, err
		}
		if w.ID == "" {
			w.ID = utils.NewID()
		}
		w.Config = widget.ClearInactiveSource(w.Type, widget.Normalize(w.Type, w.Config))
	}

	if DashboardsEqual([]Dashboard{existing.Data}, []Dashboard{data}) {
		return existing, nil
	}

	updatedAt, err := s.DashboardRepo.SaveData(ctx, id, data)
	if err != nil {
		return nil, err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionUpdate, "dashboards", id, map[string]common_models.Change{
		"widgets": {Old: len(existing.Data.Widgets), New: len(data.Widgets)},
	})
	s.Notifier.Publish(id, "dashboard.saved", map[string]any{
		"widgets": len(data.Widgets),
	})

	existing.Data = data
	existing.Name = data.Name
	existing.UpdatedAt = updatedAt
	return existing, nil
}

func (s *DashboardServiceImpl) RenameDashboard(ctx context.Context, id, userID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if err := s.requireEditor(ctx, id, userID); err != nil {
		return err
	}

	err := s.DashboardRepo.Rename(ctx, id, name)
	if err == nil {
		_ = s.AuditService.LogChange(ctx, common_models.AuditActionUpdate, "dashboards", id, map[string]common_models.Change{
			"name": {New: name},
		})
		s.Notifier.Publish(id, "dashboard.renamed", map[string]any{"name": name})
	}
	return err
}

func (s *DashboardServiceImpl) DeleteDashboard(ctx context.Context, id, userID string) error {
	ownerID, err := s.DashboardRepo.OwnerID(ctx, id)
	if err != nil {
		return err
	}
	if ownerID != userID {
		return errors.New("access denied: only the owner can delete a dashboard")
	}

	err = s.DashboardRepo.Delete(ctx, id)
	if err == nil {
		_ = s.AuditService.LogChange(ctx, common_models.AuditActionDelete, "dashboards", id, map[string]common_models.Change{
			"dashboard": {Old: id, New: "DELETED"},
		})
		s.Notifier.Publish(id, "dashboard.deleted", nil)
	}
	return err
}

func (s *DashboardServiceImpl) Publish(ctx context.Context, id, userID string, public bool) (*StoredDashboard, error) {
	ownerID, err := s.DashboardRepo.OwnerID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ownerID != userID {
		return nil, errors.New("access denied: only the owner can publish a dashboard")
	}

	existing, err := s.DashboardRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	slug := existing.PublicSlug
	if public && slug == "" {
		slug = utils.NewSlug()
	}
	if err := s.DashboardRepo.SetPublic(ctx, id, public, slug); err != nil {
		return nil, err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionShare, "dashboards", id, map[string]common_models.Change{
		"is_public": {Old: existing.IsPublic, New: public},
	})

	existing.IsPublic = public
	existing.PublicSlug = slug
	return existing, nil
}

func (s *DashboardServiceImpl) AddWidget(ctx context.Context, id, userID string, w widget.Widget) (*widget.Widget, error) {
	if err := s.validateWidget(&w); err != nil {
		return nil, err
	}

	var added *widget.Widget
	err := s.mutate(ctx, id, userID, func(d *Dashboard) error {
		added = d.AddWidget(w)
		return nil
	})
	return added, err
}

func (s *DashboardServiceImpl) UpdateWidget(ctx context.Context, id, userID string, w widget.Widget) error {
	if err := s.validateWidget(&w); err != nil {
		return err
	}
	return s.mutate(ctx, id, userID, func(d *Dashboard) error {
		return d.ReplaceWidget(w)
	})
}

func (s *DashboardServiceImpl) DuplicateWidget(ctx context.Context, id, userID, widgetID string) (*widget.Widget, error) {
	var dup *widget.Widget
	err := s.mutate(ctx, id, userID, func(d *Dashboard) error {
		var err error
		dup, err = d.DuplicateWidget(widgetID)
		return err
	})
	return dup, err
}

func (s *DashboardServiceImpl) DeleteWidget(ctx context.Context, id, userID, widgetID string) error {
	return s.mutate(ctx, id, userID, func(d *Dashboard) error {
		d.DeleteWidget(widgetID)
		return nil
	})
}

func (s *DashboardServiceImpl) MoveWidget(ctx context.Context, id, userID, widgetID, direction string) error {
	return s.mutate(ctx, id, userID, func(d *Dashboard) error {
		return d.MoveWidget(widgetID, direction)
	})
}

func (s *DashboardServiceImpl) ResizeWidget(ctx context.Context, id, userID, widgetID string, width, height float64) error {
	return s.mutate(ctx, id, userID, func(d *Dashboard) error {
		return d.ResizeWidget(widgetID, width, height)
	})
}

func (s *DashboardServiceImpl) ReorderWidget(ctx context.Context, id, userID, widgetID, targetID string, before bool) error {
	return s.mutate(ctx, id, userID, func(d *Dashboard) error {
		return d.ReorderWidget(widgetID, targetID, before)
	})
}

// mutate loads a page, applies op and writes the result back.
func (s *DashboardServiceImpl) mutate(ctx context.Context, id, userID string, op func(d *Dashboard) error) error {
	if err := s.requireEditor(ctx, id, userID); err != nil {
		return err
	}
	existing, err := s.DashboardRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	data := existing.Data
	data.ID = id
	if err := op(&data); err != nil {
		return err
	}

	if _, err := s.DashboardRepo.SaveData(ctx, id, data); err != nil {
		return err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionUpdate, "dashboards", id, map[string]common_models.Change{
		"widgets": {Old: len(existing.Data.Widgets), New: len(data.Widgets)},
	})
	s.Notifier.Publish(id, "dashboard.updated", map[string]any{
		"widgets": len(data.Widgets),
	})
	return nil
}

func (s *DashboardServiceImpl) requireEditor(ctx context.Context, id, userID string) error {
	ok, err := s.MemberService.CanEdit(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("access denied: editor role required")
	}
	return nil
}

func (s *DashboardServiceImpl) validateWidget(w *widget.Widget) error {
	if w.IsSectionTitle() {
		return nil
	}
	if strings.TrimSpace(w.Title) == "" {
		return errors.New("widget title is required")
	}
	if w.Type == widget.TypeIframe {
		if url, _ := w.Config["url"].(string); url == "" {
			return fmt.Errorf("iframe widget '%s' needs a url", w.Title)
		}
	}
	if w.Type == widget.TypeText {
		if text, _ := w.Config["text"].(string); strings.TrimSpace(text) == "" {
			return fmt.Errorf("text widget '%s' needs a body", w.Title)
		}
	}
	return nil
}
