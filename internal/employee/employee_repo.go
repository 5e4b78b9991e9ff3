package employee

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Employee) error
	FindActive(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id uint) (*Employee, error)
	FindByName(ctx context.Context, name string) (*Employee, error)
	FindActiveByPin(ctx context.Context, pin string) (*Employee, error)
	FindByIDs(ctx context.Context, ids []uint) ([]Employee, error)
	PinExists(ctx context.Context, pin string) (bool, error)
	Update(ctx context.Context, e *Employee) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// FindActive mengurutkan sesuai tampilan grid: gaji tertinggi dulu, lalu nama.
func (r *repository) FindActive(ctx context.Context) ([]Employee, error) {
	var rows []Employee
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusActive).
		Order("daily_wage DESC, name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

// FindByName also matches archived rows so a re-added name reactivates
// the old record instead of tripping the unique index.
func (r *repository) FindByName(ctx context.Context, name string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&e).Error
	return &e, err
}

func (r *repository) FindActiveByPin(ctx context.Context, pin string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Where("pin = ?", pin).
		Where("status = ?", StatusActive).
		First(&e).Error
	return &e, err
}

// FindByIDs includes archived rows: assignment history can reference
// workers who are long gone.
func (r *repository) FindByIDs(ctx context.Context, ids []uint) ([]Employee, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []Employee
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error
	return rows, err
}

func (r *repository) PinExists(ctx context.Context, pin string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("pin = ?", pin).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Save(e).Error
}
