package project

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=project_repo.go -destination=mock/project_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateClient(ctx context.Context, c *Client) error
	FindClients(ctx context.Context) ([]Client, error)
	FindClientByID(ctx context.Context, id uint) (*Client, error)
	FindClientByNameFold(ctx context.Context, name string) (*Client, error)
	UpdateClient(ctx context.Context, c *Client) error
	DeleteClient(ctx context.Context, id uint) error
	TouchClient(ctx context.Context, id uint) error

	CreateAssignment(ctx context.Context, a *WorkAssignment) error
	AssignmentExists(ctx context.Context, employeeID, clientID uint, date time.Time) (bool, error)
	DeleteAssignment(ctx context.Context, employeeID, clientID uint, date time.Time) error
	DeleteAssignmentsForDay(ctx context.Context, clientID uint, date time.Time) error
	DeleteAssignmentsByClient(ctx context.Context, clientID uint) error
	FindAssignmentsRange(ctx context.Context, start, end time.Time) ([]WorkAssignment, error)

	UpsertMoneyTaken(ctx context.Context, clientID uint, date time.Time, amount decimal.Decimal) error
	DeleteMoneyForDay(ctx context.Context, clientID uint, date time.Time) error
	DeleteMoneyByClient(ctx context.Context, clientID uint) error
	FindMoneyRange(ctx context.Context, start, end time.Time) ([]MoneyTaken, error)
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

func (r *repository) CreateClient(ctx context.Context, c *Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// FindClients: situs yang baru ada transaksi tampil paling atas.
func (r *repository) FindClients(ctx context.Context) ([]Client, error) {
	var rows []Client
	err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindClientByID(ctx context.Context, id uint) (*Client, error) {
	var c Client
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

// FindClientByNameFold matches the name case-insensitively, so "area a"
// collides with an existing "Area A".
func (r *repository) FindClientByNameFold(ctx context.Context, name string) (*Client, error) {
	var c Client
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&c).Error
	return &c, err
}

func (r *repository) UpdateClient(ctx context.Context, c *Client) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *repository) DeleteClient(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Client{}, "id = ?", id).Error
}

func (r *repository) TouchClient(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&Client{}).
		Where("id = ?", id).
		Update("updated_at", time.Now().UTC()).Error
}

func (r *repository) CreateAssignment(ctx context.Context, a *WorkAssignment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) AssignmentExists(ctx context.Context, employeeID, clientID uint, date time.Time) (bool, error) {
	var a WorkAssignment
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND client_id = ?", employeeID, clientID).
		Where("date = ?", date.Format("2006-01-02")).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *repository) DeleteAssignment(ctx context.Context, employeeID, clientID uint, date time.Time) error {
	return r.db.WithContext(ctx).
		Where("employee_id = ? AND client_id = ?", employeeID, clientID).
		Where("date = ?", date.Format("2006-01-02")).
		Delete(&WorkAssignment{}).Error
}

func (r *repository) DeleteAssignmentsForDay(ctx context.Context, clientID uint, date time.Time) error {
	return r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Where("date = ?", date.Format("2006-01-02")).
		Delete(&WorkAssignment{}).Error
}

func (r *repository) DeleteAssignmentsByClient(ctx context.Context, clientID uint) error {
	return r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Delete(&WorkAssignment{}).Error
}

func (r *repository) FindAssignmentsRange(ctx context.Context, start, end time.Time) ([]WorkAssignment, error) {
	var rows []WorkAssignment
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("date ASC, client_id ASC, employee_id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) UpsertMoneyTaken(ctx context.Context, clientID uint, date time.Time, amount decimal.Decimal) error {
	var existing MoneyTaken
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Where("date = ?", date.Format("2006-01-02")).
		First(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err == nil {
		existing.Amount = amount
		return r.db.WithContext(ctx).Save(&existing).Error
	}

	row := &MoneyTaken{
		ClientID: clientID,
		Date:     date,
		Amount:   amount,
	}
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *repository) DeleteMoneyForDay(ctx context.Context, clientID uint, date time.Time) error {
	return r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Where("date = ?", date.Format("2006-01-02")).
		Delete(&MoneyTaken{}).Error
}

func (r *repository) DeleteMoneyByClient(ctx context.Context, clientID uint) error {
	return r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Delete(&MoneyTaken{}).Error
}

func (r *repository) FindMoneyRange(ctx context.Context, start, end time.Time) ([]MoneyTaken, error) {
	var rows []MoneyTaken
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("date ASC, client_id ASC").
		Find(&rows).Error
	return rows, err
}
