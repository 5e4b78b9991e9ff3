package expense

import (
	"context"
	"testing"
	"time"

	expenseerrors "ak-attendance/internal/expense/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	rows    []ProjectExpense
	presets []CommonExpense
	nextID  uint
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, e *ProjectExpense) error {
	f.nextID++
	e.ID = f.nextID
	f.rows = append(f.rows, *e)
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id uint) (*ProjectExpense, error) {
	for i := range f.rows {
		if f.rows[i].ID == id {
			return &f.rows[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindByClient(ctx context.Context, clientID uint) ([]ProjectExpense, error) {
	var out []ProjectExpense
	for _, e := range f.rows {
		if e.ClientID == clientID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindRange(ctx context.Context, start, end time.Time) ([]ProjectExpense, error) {
	return f.rows, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id uint) error {
	kept := f.rows[:0]
	for _, e := range f.rows {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	f.rows = kept
	return nil
}

func (f *fakeRepo) DeleteForDay(ctx context.Context, clientID uint, date time.Time) error {
	return nil
}

func (f *fakeRepo) DeleteByClient(ctx context.Context, clientID uint) error { return nil }

func (f *fakeRepo) CreatePreset(ctx context.Context, p *CommonExpense) error {
	f.nextID++
	p.ID = f.nextID
	f.presets = append(f.presets, *p)
	return nil
}

func (f *fakeRepo) FindPresets(ctx context.Context) ([]CommonExpense, error) {
	return f.presets, nil
}

func (f *fakeRepo) DeletePreset(ctx context.Context, id uint) error {
	kept := f.presets[:0]
	for _, p := range f.presets {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	f.presets = kept
	return nil
}

type fakeToucher struct {
	touched []uint
}

func (f *fakeToucher) TouchClient(ctx context.Context, id uint) error {
	f.touched = append(f.touched, id)
	return nil
}

func TestService_AddExpense_TouchesClient(t *testing.T) {
	repo := &fakeRepo{}
	toucher := &fakeToucher{}
	svc := NewService(repo, toucher)

	resp, err := svc.AddExpense(context.Background(), AddExpenseRequest{
		ClientID: 3,
		Date:     "2024-03-02",
		Name:     " Semen ",
		Amount:   80,
	})
	assert.NoError(t, err)
	assert.Equal(t, "Semen", resp.Name)
	assert.Equal(t, "80.00", resp.Amount)
	assert.Equal(t, []uint{3}, toucher.touched)
}

func TestService_AddExpense_Validation(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeToucher{})
	ctx := context.Background()

	_, err := svc.AddExpense(ctx, AddExpenseRequest{ClientID: 1, Date: "bad", Name: "Semen"})
	assert.ErrorIs(t, err, expenseerrors.ErrInvalidDate)

	_, err = svc.AddExpense(ctx, AddExpenseRequest{ClientID: 1, Date: "2024-03-02", Name: "   "})
	assert.ErrorIs(t, err, expenseerrors.ErrNameRequired)

	_, err = svc.AddExpense(ctx, AddExpenseRequest{ClientID: 1, Date: "2024-03-02", Name: "Semen", Amount: -1})
	assert.ErrorIs(t, err, expenseerrors.ErrInvalidAmount)
}

func TestService_AddExpense_ClampsAmount(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, &fakeToucher{})

	_, err := svc.AddExpense(context.Background(), AddExpenseRequest{
		ClientID: 1,
		Date:     "2024-03-02",
		Name:     "Alat berat",
		Amount:   9_000_000,
	})
	assert.NoError(t, err)
	assert.True(t, repo.rows[0].Amount.Equal(decimal.NewFromInt(1_000_000)))
}

func TestService_DeleteExpense_TouchesOwningClient(t *testing.T) {
	repo := &fakeRepo{}
	toucher := &fakeToucher{}
	svc := NewService(repo, toucher)

	resp, err := svc.AddExpense(context.Background(), AddExpenseRequest{
		ClientID: 4, Date: "2024-03-02", Name: "Pasir", Amount: 20,
	})
	assert.NoError(t, err)

	assert.NoError(t, svc.DeleteExpense(context.Background(), resp.ID))
	assert.Empty(t, repo.rows)
	assert.Equal(t, []uint{4, 4}, toucher.touched)
}

func TestService_DeleteExpense_NotFound(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeToucher{})
	err := svc.DeleteExpense(context.Background(), 99)
	assert.ErrorIs(t, err, expenseerrors.ErrExpenseNotFound)
}

func TestService_Presets_CRUD(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeToucher{})
	ctx := context.Background()

	created, err := svc.CreatePreset(ctx, PresetRequest{Name: "Bensin", Amount: 15})
	assert.NoError(t, err)
	assert.Equal(t, "15.00", created.Amount)

	list, err := svc.GetPresets(ctx)
	assert.NoError(t, err)
	assert.Len(t, list, 1)

	assert.NoError(t, svc.DeletePreset(ctx, created.ID))
	list, err = svc.GetPresets(ctx)
	assert.NoError(t, err)
	assert.Empty(t, list)
}
