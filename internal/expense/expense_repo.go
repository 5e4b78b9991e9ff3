package expense

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=expense_repo.go -destination=mock/expense_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, e *ProjectExpense) error
	FindByID(ctx context.Context, id uint) (*ProjectExpense, error)
	FindByClient(ctx context.Context, clientID uint) ([]ProjectExpense, error)
	FindRange(ctx context.Context, start, end time.Time) ([]ProjectExpense, error)
	Delete(ctx context.Context, id uint) error
	DeleteForDay(ctx context.Context, clientID uint, date time.Time) error
	DeleteByClient(ctx context.Context, clientID uint) error

	CreatePreset(ctx context.Context, p *CommonExpense) error
	FindPresets(ctx context.Context) ([]CommonExpense, error)
	DeletePreset(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, e *ProjectExpense) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*ProjectExpense, error) {
	var e ProjectExpense
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) FindByClient(ctx context.Context, clientID uint) ([]ProjectExpense, error) {
	var rows []ProjectExpense
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("date DESC, id DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindRange(ctx context.Context, start, end time.Time) ([]ProjectExpense, error) {
	var rows []ProjectExpense
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("date ASC, client_id ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&ProjectExpense{}, "id = ?", id).Error
}

func (r *repository) DeleteForDay(ctx context.Context, clientID uint, date time.Time) error {
	return r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Where("date = ?", date.Format("2006-01-02")).
		Delete(&ProjectExpense{}).Error
}

func (r *repository) DeleteByClient(ctx context.Context, clientID uint) error {
	return r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Delete(&ProjectExpense{}).Error
}

func (r *repository) CreatePreset(ctx context.Context, p *CommonExpense) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindPresets(ctx context.Context) ([]CommonExpense, error) {
	var rows []CommonExpense
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) DeletePreset(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&CommonExpense{}, "id = ?", id).Error
}
