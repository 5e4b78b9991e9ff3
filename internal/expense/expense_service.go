package expense

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	expenseerrors "ak-attendance/internal/expense/errors"
	"ak-attendance/internal/shared/apperror"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var maxAmount = decimal.NewFromInt(1_000_000)

// ClientToucher bumps a client's activity timestamp. Satisfied by the
// project repository; declared here so this package stays import-free
// of it.
type ClientToucher interface {
	TouchClient(ctx context.Context, id uint) error
}

//go:generate mockgen -source=expense_service.go -destination=mock/expense_service_mock.go -package=mock
type Service interface {
	AddExpense(ctx context.Context, req AddExpenseRequest) (*ExpenseResponse, error)
	GetExpensesByClient(ctx context.Context, clientID uint) ([]ExpenseResponse, error)
	DeleteExpense(ctx context.Context, id uint) error
	CreatePreset(ctx context.Context, req PresetRequest) (*PresetResponse, error)
	GetPresets(ctx context.Context) ([]PresetResponse, error)
	DeletePreset(ctx context.Context, id uint) error
}

type service struct {
	repo    Repository
	clients ClientToucher
	logger  *zap.Logger
}

func NewService(repo Repository, clients ClientToucher) Service {
	return &service{
		repo:    repo,
		clients: clients,
		logger:  zap.L().Named("expense.service"),
	}
}

func (s *service) AddExpense(ctx context.Context, req AddExpenseRequest) (*ExpenseResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, expenseerrors.ErrInvalidDate
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, expenseerrors.ErrNameRequired
	}
	amount, err := normalizeAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	row := &ProjectExpense{
		ClientID: req.ClientID,
		Date:     date,
		Name:     name,
		Amount:   amount,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to save expense", http.StatusInternalServerError)
	}

	// Pengeluaran baru = aktivitas, situs naik ke atas daftar
	if s.clients != nil {
		if err := s.clients.TouchClient(ctx, req.ClientID); err != nil {
			s.logger.Warn("failed to touch client after expense",
				zap.Uint("client_id", req.ClientID),
				zap.Error(err),
			)
		}
	}

	resp := toExpenseResponse(*row)
	return &resp, nil
}

func (s *service) GetExpensesByClient(ctx context.Context, clientID uint) ([]ExpenseResponse, error) {
	rows, err := s.repo.FindByClient(ctx, clientID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to fetch expenses", http.StatusInternalServerError)
	}
	out := make([]ExpenseResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toExpenseResponse(row))
	}
	return out, nil
}

func (s *service) DeleteExpense(ctx context.Context, id uint) error {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return expenseerrors.ErrExpenseNotFound
		}
		return apperror.Wrap(err, apperror.CodeInternalError, "failed to fetch expense", http.StatusInternalServerError)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "failed to delete expense", http.StatusInternalServerError)
	}

	if s.clients != nil {
		if err := s.clients.TouchClient(ctx, row.ClientID); err != nil {
			s.logger.Warn("failed to touch client after expense delete",
				zap.Uint("client_id", row.ClientID),
				zap.Error(err),
			)
		}
	}
	return nil
}

func (s *service) CreatePreset(ctx context.Context, req PresetRequest) (*PresetResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, expenseerrors.ErrNameRequired
	}
	amount, err := normalizeAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	row := &CommonExpense{Name: name, Amount: amount}
	if err := s.repo.CreatePreset(ctx, row); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to save preset", http.StatusInternalServerError)
	}
	resp := toPresetResponse(*row)
	return &resp, nil
}

func (s *service) GetPresets(ctx context.Context) ([]PresetResponse, error) {
	rows, err := s.repo.FindPresets(ctx)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to fetch presets", http.StatusInternalServerError)
	}
	out := make([]PresetResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toPresetResponse(row))
	}
	return out, nil
}

func (s *service) DeletePreset(ctx context.Context, id uint) error {
	if err := s.repo.DeletePreset(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return expenseerrors.ErrPresetNotFound
		}
		return apperror.Wrap(err, apperror.CodeInternalError, "failed to delete preset", http.StatusInternalServerError)
	}
	return nil
}

// normalizeAmount mirrors the money-cell rules: negatives rejected,
// anything above 1,000,000 clamped to the cap.
func normalizeAmount(raw float64) (decimal.Decimal, error) {
	if raw < 0 {
		return decimal.Decimal{}, expenseerrors.ErrInvalidAmount
	}
	v := decimal.NewFromFloat(raw)
	if v.GreaterThan(maxAmount) {
		v = maxAmount
	}
	return v, nil
}

func toExpenseResponse(e ProjectExpense) ExpenseResponse {
	return ExpenseResponse{
		ID:       e.ID,
		ClientID: e.ClientID,
		Date:     e.Date.Format("2006-01-02"),
		Name:     e.Name,
		Amount:   e.Amount.StringFixed(2),
	}
}

func toPresetResponse(p CommonExpense) PresetResponse {
	return PresetResponse{
		ID:     p.ID,
		Name:   p.Name,
		Amount: p.Amount.StringFixed(2),
	}
}
