package service

import (
	"context"
	"errors"

	"lokalhunt/config"
	"lokalhunt/internal/auth"
	"lokalhunt/internal/domain"
	"lokalhunt/internal/models"
	"lokalhunt/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailExists  = errors.New("email already registered")
	ErrInvalidCreds = errors.New("invalid email or password")
	ErrInvalidRole  = errors.New("invalid role")
)

type AuthService struct {
	cfg        *config.Config
	userRepo   *repository.UserRepository
	dispatcher *DispatchService
	log        *zap.Logger
}

func NewAuthService(cfg *config.Config, userRepo *repository.UserRepository, dispatcher *DispatchService, log *zap.Logger) *AuthService {
	return &AuthService{cfg: cfg, userRepo: userRepo, dispatcher: dispatcher, log: log}
}

// Register creates the user and best-effort notifies the branch admins of
// the user's city. Notification failures never fail the registration.
func (s *AuthService) Register(ctx context.Context, name, email, password, role, city, companyName string) (*models.User, string, string, error) {
	switch role {
	case domain.RoleCandidate, domain.RoleEmployer, domain.RoleBranchAdmin:
	default:
		return nil, "", "", ErrInvalidRole
	}
	_, err := s.userRepo.GetByEmail(email)
	if err == nil {
		return nil, "", "", ErrEmailExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}
	u := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		City:         city,
		CompanyName:  companyName,
	}
	if err := s.userRepo.Create(u); err != nil {
		return nil, "", "", err
	}

	s.notifyRegistration(ctx, u)

	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
	if err != nil {
		return u, "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return u, access, "", err
	}
	return u, access, refresh, nil
}

func (s *AuthService) Login(email, password string) (*models.User, string, string, error) {
	u, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", ErrInvalidCreds
		}
		return nil, "", "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", "", ErrInvalidCreds
	}
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return nil, "", "", err
	}
	return u, access, refresh, nil
}

func (s *AuthService) notifyRegistration(ctx context.Context, u *models.User) {
	if s.dispatcher == nil || u.City == "" {
		return
	}
	var err error
	switch u.Role {
	case domain.RoleCandidate:
		_, err = s.dispatcher.NotifyBranchAdmins(ctx, u.City, domain.NotifNewCandidateRegistered, map[string]interface{}{
			"candidateName":  u.Name,
			"candidateEmail": u.Email,
		})
	case domain.RoleEmployer:
		_, err = s.dispatcher.NotifyBranchAdmins(ctx, u.City, domain.NotifNewEmployerRegistered, map[string]interface{}{
			"employerName":  u.Name,
			"employerEmail": u.Email,
			"companyName":   u.CompanyName,
		})
	}
	if err != nil {
		s.log.Warn("registration notification failed",
			zap.Uint("user_id", u.ID), zap.Error(err))
	}
}
