package employee

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"

	employeeerrors "ak-attendance/internal/employee/errors"
	"ak-attendance/internal/shared/contextutil"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// maxPinAttempts membatasi retry saat PIN random bentrok dengan PIN lama.
const maxPinAttempts = 5

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	Update(ctx context.Context, id uint, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Archive(ctx context.Context, id uint) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	newPin func() string
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{
		db:     db,
		repo:   repo,
		newPin: randomPin,
		logger: zap.L().Named("employee.service"),
	}
}

// randomPin menghasilkan PIN login, jadi harus pakai CSPRNG.
func randomPin() string {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		panic(fmt.Sprintf("employee: read system entropy: %v", err))
	}
	return fmt.Sprintf("%04d", n.Int64())
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("name", req.Name),
	)

	if len(req.Name) > 15 {
		return EmployeeResponse{}, employeeerrors.ErrNameTooLong
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindByName(ctx, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err == nil {
		// Nama yang sama dengan record arsip berarti pekerja lama balik kerja:
		// hidupkan lagi record-nya supaya histori absensinya tetap nyambung.
		if existing.Status != StatusArchived {
			return EmployeeResponse{}, employeeerrors.ErrNameAlreadyExists
		}

		existing.Status = StatusActive
		existing.DailyWage = decimal.NewFromFloat(req.DailyWage)
		existing.Phone = req.Phone
		if existing.Pin == "" {
			pin, err := s.allocatePin(ctx, qtx)
			if err != nil {
				return EmployeeResponse{}, err
			}
			existing.Pin = pin
		}

		if err := qtx.Update(ctx, existing); err != nil {
			return EmployeeResponse{}, mapRepositoryError(err)
		}
		if err := tx.Commit(); err != nil {
			return EmployeeResponse{}, err
		}

		s.logger.Info("archived employee reactivated",
			zap.String("request_id", rid),
			zap.Uint("employee_id", existing.ID),
		)
		return mapToResponse(*existing), nil
	}

	pin, err := s.allocatePin(ctx, qtx)
	if err != nil {
		return EmployeeResponse{}, err
	}

	row := &Employee{
		Name:            req.Name,
		DailyWage:       decimal.NewFromFloat(req.DailyWage),
		Phone:           req.Phone,
		PreviousAdvance: decimal.Zero,
		Status:          StatusActive,
		Pin:             pin,
	}

	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("create employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.Uint("employee_id", row.ID),
	)
	return mapToResponse(*row), nil
}

// allocatePin mencoba PIN 4 digit random sampai dapat yang belum terpakai.
func (s *service) allocatePin(ctx context.Context, repo Repository) (string, error) {
	for attempt := 0; attempt < maxPinAttempts; attempt++ {
		pin := s.newPin()
		taken, err := repo.PinExists(ctx, pin)
		if err != nil {
			return "", err
		}
		if !taken {
			return pin, nil
		}
	}
	s.logger.Error("pin allocation exhausted", zap.Int("attempts", maxPinAttempts))
	return "", employeeerrors.ErrPinGenerationFailed
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	rows, err := s.repo.FindActive(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]EmployeeResponse, 0, len(rows))
	for i := range rows {
		// Record lama dari sebelum fitur login per pekerja belum punya PIN
		if rows[i].Pin == "" {
			pin, err := s.allocatePin(ctx, s.repo)
			if err != nil {
				return nil, err
			}
			rows[i].Pin = pin
			if err := s.repo.Update(ctx, &rows[i]); err != nil {
				return nil, mapRepositoryError(err)
			}
		}
		resp = append(resp, mapToResponse(rows[i]))
	}
	return resp, nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if req.Name != nil {
		if len(*req.Name) > 15 {
			return EmployeeResponse{}, employeeerrors.ErrNameTooLong
		}
		row.Name = *req.Name
	}
	if req.DailyWage != nil {
		row.DailyWage = decimal.NewFromFloat(*req.DailyWage)
	}
	if req.Phone != nil {
		row.Phone = req.Phone
	}

	if err := s.repo.Update(ctx, row); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("update employee success", zap.Uint("employee_id", id))
	return mapToResponse(*row), nil
}

// Archive is a soft delete: historical attendance keeps pointing at the row.
func (s *service) Archive(ctx context.Context, id uint) error {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	row.Status = StatusArchived
	if err := s.repo.Update(ctx, row); err != nil {
		return mapRepositoryError(err)
	}

	s.logger.Info("employee archived", zap.Uint("employee_id", id))
	return nil
}

func mapToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:              e.ID,
		Name:            e.Name,
		DailyWage:       e.DailyWage.StringFixed(2),
		Phone:           e.Phone,
		PreviousAdvance: e.PreviousAdvance.StringFixed(2),
		Status:          e.Status,
		Pin:             e.Pin,
	}
}
