package profile

import (
	"context"

	common_models "go-dashboards/internal/common/models"
	"go-dashboards/internal/features/audit"
)

type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*Profile, error)
}

type ProfileServiceImpl struct {
	Repo         ProfileRepository
	AuditService audit.AuditService
}

func NewProfileService(repo ProfileRepository, auditService audit.AuditService) ProfileService {
	return &ProfileServiceImpl{
		Repo:         repo,
		AuditService: auditService,
	}
}

func (s *ProfileServiceImpl) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	return s.Repo.Get(ctx, userID)
}

func (s *ProfileServiceImpl) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*Profile, error) {
	p, err := s.Repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	changes := map[string]common_models.Change{}
	if req.FullName != nil && *req.FullName != p.FullName {
		changes["full_name"] = common_models.Change{Old: p.FullName, New: *req.FullName}
		p.FullName = *req.FullName
	}
	if req.AvatarURL != nil && *req.AvatarURL != p.AvatarURL {
		changes["avatar_url"] = common_models.Change{Old: p.AvatarURL, New: *req.AvatarURL}
		p.AvatarURL = *req.AvatarURL
	}
	if len(changes) == 0 {
		return p, nil
	}

	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionUpdate, "profiles", userID, changes)
	return p, nil
}
