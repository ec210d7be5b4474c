package auth

import (
	"context"
	"errors"
	"strings"

	common_models "go-dashboards/internal/common/models"
	"go-dashboards/internal/features/audit"
	"go-dashboards/internal/features/profile"
	"go-dashboards/pkg/utils"
)

type AuthService interface {
	Register(ctx context.Context, email, password, fullName string) (*profile.Profile, error)
	Login(ctx context.Context, email, password string) (string, *profile.Profile, error)
}

type AuthServiceImpl struct {
	ProfileRepo  profile.ProfileRepository
	AuditService audit.AuditService
}

func NewAuthService(profileRepo profile.ProfileRepository, auditService audit.AuditService) AuthService {
	return &AuthServiceImpl{
		ProfileRepo:  profileRepo,
		AuditService: auditService,
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, email, password, fullName string) (*profile.Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.New("valid email required")
	}
	if len(password) < 6 {
		return nil, errors.New("password must be at least 6 characters")
	}

	if _, err := s.ProfileRepo.IDByEmail(ctx, email); err == nil {
		return nil, errors.New("email already registered")
	}

	// hash password placeholder (TODO: use bcrypt)
	hashedPassword := password

	p := &profile.Profile{
		ID:       utils.NewID(),
		Email:    email,
		FullName: fullName,
		Password: hashedPassword,
	}
	if err := s.ProfileRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionCreate, "profiles", p.ID, map[string]common_models.Change{
		"email": {New: email},
	})

	return p, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (string, *profile.Profile, error) {
	p, err := s.ProfileRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	// Check password (TODO: use bcrypt)
	if p.Password != password {
		return "", nil, errors.New("invalid credentials")
	}

	token, err := utils.GenerateToken(p.ID, p.Email)
	if err != nil {
		return "", nil, err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionLogin, "profiles", p.ID, nil)

	return token, p, nil
}
