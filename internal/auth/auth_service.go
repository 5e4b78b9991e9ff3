package auth

import (
	"context"
	"errors"
	"net/http"
	"regexp"

	autherrors "ak-attendance/internal/auth/errors"
	"ak-attendance/internal/employee"
	"ak-attendance/internal/settings"
	"ak-attendance/internal/shared/apperror"
	"ak-attendance/internal/shared/token"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

var pinPattern = regexp.MustCompile(`^\d{4}$`)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	UpdateAdminPin(ctx context.Context, req UpdateAdminPinRequest) error
}

type service struct {
	settings  settings.Repository
	employees employee.Repository
	logger    *zap.Logger
}

func NewService(settingsRepo settings.Repository, employees employee.Repository) Service {
	return &service{
		settings:  settingsRepo,
		employees: employees,
		logger:    zap.L().Named("auth.service"),
	}
}

// Login resolves a PIN to a role: the admin hash is checked first, then
// the active-employee PIN table. One shared failure message on purpose,
// so the response does not reveal which PINs exist.
func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if !pinPattern.MatchString(req.Pin) {
		return nil, autherrors.ErrInvalidPin
	}

	hash, err := s.settings.Get(ctx, settings.KeyAdminPin)
	if err != nil && !errors.Is(err, settings.ErrNotFound) {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to load admin pin", http.StatusInternalServerError)
	}
	if err == nil && bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Pin)) == nil {
		jwt, err := token.Generate(RoleAdmin, 0)
		if err != nil {
			return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to issue token", http.StatusInternalServerError)
		}
		s.logger.Info("admin logged in")
		return &LoginResponse{Token: jwt, Role: RoleAdmin}, nil
	}

	emp, err := s.employees.FindActiveByPin(ctx, req.Pin)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, autherrors.ErrInvalidPin
		}
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to look up pin", http.StatusInternalServerError)
	}

	jwt, err := token.Generate(RoleEmployee, emp.ID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to issue token", http.StatusInternalServerError)
	}

	s.logger.Info("employee logged in", zap.Uint("employee_id", emp.ID))
	return &LoginResponse{
		Token:      jwt,
		Role:       RoleEmployee,
		EmployeeID: emp.ID,
		Name:       emp.Name,
	}, nil
}

func (s *service) UpdateAdminPin(ctx context.Context, req UpdateAdminPinRequest) error {
	if !pinPattern.MatchString(req.NewPin) {
		return autherrors.ErrPinFormat
	}

	hash, err := s.settings.Get(ctx, settings.KeyAdminPin)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "failed to load admin pin", http.StatusInternalServerError)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.CurrentPin)) != nil {
		return autherrors.ErrCurrentPinMismatch
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPin), bcrypt.DefaultCost)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "failed to hash pin", http.StatusInternalServerError)
	}
	if err := s.settings.Set(ctx, settings.KeyAdminPin, string(newHash)); err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "failed to store pin", http.StatusInternalServerError)
	}

	s.logger.Info("admin pin updated")
	return nil
}
