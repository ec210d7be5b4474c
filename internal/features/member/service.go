package member

import (
	"context"
	"errors"
	"fmt"

	common_models "go-dashboards/internal/common/models"
	"go-dashboards/internal/features/audit"
)

// ProfileFinder resolves invite emails to user ids. Implemented by the
// profile repository.
type ProfileFinder interface {
	IDByEmail(ctx context.Context, email string) (string, error)
}

// OwnerChecker answers who owns a dashboard. Implemented by the dashboard
// repository.
type OwnerChecker interface {
	OwnerID(ctx context.Context, dashboardID string) (string, error)
}

type MemberService interface {
	Invite(ctx context.Context, dashboardID, actorID, email string, role Role) (*Member, error)
	UpdateRole(ctx context.Context, dashboardID, actorID, userID string, role Role) error
	Remove(ctx context.Context, dashboardID, actorID, userID string) error
	List(ctx context.Context, dashboardID, actorID string) ([]Member, error)
	CanView(ctx context.Context, dashboardID, userID string) (bool, error)
	CanEdit(ctx context.Context, dashboardID, userID string) (bool, error)
}

type MemberServiceImpl struct {
	Repo         MemberRepository
	Profiles     ProfileFinder
	Owners       OwnerChecker
	AuditService audit.AuditService
}

func NewMemberService(repo MemberRepository, profiles ProfileFinder, owners OwnerChecker, auditService audit.AuditService) MemberService {
	return &MemberServiceImpl{
		Repo:         repo,
		Profiles:     profiles,
		Owners:       owners,
		AuditService: auditService,
	}
}

func (s *MemberServiceImpl) requireOwner(ctx context.Context, dashboardID, actorID string) error {
	ownerID, err := s.Owners.OwnerID(ctx, dashboardID)
	if err != nil {
		return err
	}
	if ownerID != actorID {
		return errors.New("access denied: only the owner can manage sharing")
	}
	return nil
}

func (s *MemberServiceImpl) Invite(ctx context.Context, dashboardID, actorID, email string, role Role) (*Member, error) {
	if !ValidRole(role) {
		return nil, fmt.Errorf("invalid role '%s'", role)
	}
	if err := s.requireOwner(ctx, dashboardID, actorID); err != nil {
		return nil, err
	}

	userID, err := s.Profiles.IDByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("no account for '%s'", email)
	}
	if userID == actorID {
		return nil, errors.New("owner is already a member")
	}

	if err := s.Repo.Upsert(ctx, dashboardID, userID, role); err != nil {
		return nil, err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionShare, "dashboard_members", dashboardID, map[string]common_models.Change{
		"member": {New: map[string]any{"user_id": userID, "email": email, "role": role}},
	})

	return &Member{DashboardID: dashboardID, UserID: userID, Email: email, Role: role}, nil
}

func (s *MemberServiceImpl) UpdateRole(ctx context.Context, dashboardID, actorID, userID string, role Role) error {
	if !ValidRole(role) {
		return fmt.Errorf("invalid role '%s'", role)
	}
	if err := s.requireOwner(ctx, dashboardID, actorID); err != nil {
		return err
	}

	old, err := s.Repo.RoleFor(ctx, dashboardID, userID)
	if err != nil {
		return err
	}

	if err := s.Repo.Upsert(ctx, dashboardID, userID, role); err != nil {
		return err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionShare, "dashboard_members", dashboardID, map[string]common_models.Change{
		"role": {Old: old, New: role},
	})
	return nil
}

func (s *MemberServiceImpl) Remove(ctx context.Context, dashboardID, actorID, userID string) error {
	// Members may always remove themselves.
	if actorID != userID {
		if err := s.requireOwner(ctx, dashboardID, actorID); err != nil {
			return err
		}
	}

	err := s.Repo.Remove(ctx, dashboardID, userID)
	if err == nil {
		_ = s.AuditService.LogChange(ctx, common_models.AuditActionShare, "dashboard_members", dashboardID, map[string]common_models.Change{
			"member": {Old: userID, New: "REMOVED"},
		})
	}
	return err
}

func (s *MemberServiceImpl) List(ctx context.Context, dashboardID, actorID string) ([]Member, error) {
	ok, err := s.CanView(ctx, dashboardID, actorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("access denied")
	}
	return s.Repo.List(ctx, dashboardID)
}

func (s *MemberServiceImpl) CanView(ctx context.Context, dashboardID, userID string) (bool, error) {
	ownerID, err := s.Owners.OwnerID(ctx, dashboardID)
	if err != nil {
		return false, err
	}
	if ownerID == userID {
		return true, nil
	}
	_, err = s.Repo.RoleFor(ctx, dashboardID, userID)
	if err == ErrNotMember {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *MemberServiceImpl) CanEdit(ctx context.Context, dashboardID, userID string) (bool, error) {
	ownerID, err := s.Owners.OwnerID(ctx, dashboardID)
	if err != nil {
		return false, err
	}
	if ownerID == userID {
		return true, nil
	}
	role, err := s.Repo.RoleFor(ctx, dashboardID, userID)
	if err == ErrNotMember {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return role == RoleEditor, nil
}
