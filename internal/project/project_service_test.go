package project

import (
	"context"
	"strings"
	"testing"
	"time"

	"ak-attendance/internal/employee"
	"ak-attendance/internal/expense"
	projecterrors "ak-attendance/internal/project/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeRepo struct {
	clients     map[uint]*Client
	assignments []WorkAssignment
	money       []MoneyTaken
	touched     []uint
}

func newFakeRepo(clients ...*Client) *fakeRepo {
	f := &fakeRepo{clients: map[uint]*Client{}}
	for _, c := range clients {
		f.clients[c.ID] = c
	}
	return f
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepo) CreateClient(ctx context.Context, c *Client) error {
	c.ID = uint(len(f.clients) + 1)
	f.clients[c.ID] = c
	return nil
}

func (f *fakeRepo) FindClients(ctx context.Context) ([]Client, error) {
	out := make([]Client, 0, len(f.clients))
	for _, c := range f.clients {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeRepo) FindClientByID(ctx context.Context, id uint) (*Client, error) {
	if c, ok := f.clients[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindClientByNameFold(ctx context.Context, name string) (*Client, error) {
	for _, c := range f.clients {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) UpdateClient(ctx context.Context, c *Client) error {
	f.clients[c.ID] = c
	return nil
}

func (f *fakeRepo) DeleteClient(ctx context.Context, id uint) error {
	delete(f.clients, id)
	return nil
}

func (f *fakeRepo) TouchClient(ctx context.Context, id uint) error {
	f.touched = append(f.touched, id)
	return nil
}

func (f *fakeRepo) CreateAssignment(ctx context.Context, a *WorkAssignment) error {
	f.assignments = append(f.assignments, *a)
	return nil
}

func (f *fakeRepo) AssignmentExists(ctx context.Context, employeeID, clientID uint, date time.Time) (bool, error) {
	for _, a := range f.assignments {
		if a.EmployeeID == employeeID && a.ClientID == clientID && a.Date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) DeleteAssignment(ctx context.Context, employeeID, clientID uint, date time.Time) error {
	kept := f.assignments[:0]
	for _, a := range f.assignments {
		if !(a.EmployeeID == employeeID && a.ClientID == clientID && a.Date.Equal(date)) {
			kept = append(kept, a)
		}
	}
	f.assignments = kept
	return nil
}

func (f *fakeRepo) DeleteAssignmentsForDay(ctx context.Context, clientID uint, date time.Time) error {
	kept := f.assignments[:0]
	for _, a := range f.assignments {
		if !(a.ClientID == clientID && a.Date.Equal(date)) {
			kept = append(kept, a)
		}
	}
	f.assignments = kept
	return nil
}

func (f *fakeRepo) DeleteAssignmentsByClient(ctx context.Context, clientID uint) error {
	kept := f.assignments[:0]
	for _, a := range f.assignments {
		if a.ClientID != clientID {
			kept = append(kept, a)
		}
	}
	f.assignments = kept
	return nil
}

func (f *fakeRepo) FindAssignmentsRange(ctx context.Context, start, end time.Time) ([]WorkAssignment, error) {
	return f.assignments, nil
}

func (f *fakeRepo) UpsertMoneyTaken(ctx context.Context, clientID uint, date time.Time, amount decimal.Decimal) error {
	for i := range f.money {
		if f.money[i].ClientID == clientID && f.money[i].Date.Equal(date) {
			f.money[i].Amount = amount
			return nil
		}
	}
	f.money = append(f.money, MoneyTaken{ClientID: clientID, Date: date, Amount: amount})
	return nil
}

func (f *fakeRepo) DeleteMoneyForDay(ctx context.Context, clientID uint, date time.Time) error {
	kept := f.money[:0]
	for _, m := range f.money {
		if !(m.ClientID == clientID && m.Date.Equal(date)) {
			kept = append(kept, m)
		}
	}
	f.money = kept
	return nil
}

func (f *fakeRepo) DeleteMoneyByClient(ctx context.Context, clientID uint) error {
	kept := f.money[:0]
	for _, m := range f.money {
		if m.ClientID != clientID {
			kept = append(kept, m)
		}
	}
	f.money = kept
	return nil
}

func (f *fakeRepo) FindMoneyRange(ctx context.Context, start, end time.Time) ([]MoneyTaken, error) {
	return f.money, nil
}

type fakeExpenseRepo struct {
	expense.Repository
	rows []expense.ProjectExpense
}

func (f *fakeExpenseRepo) WithTx(tx *gorm.DB) expense.Repository { return f }

func (f *fakeExpenseRepo) FindRange(ctx context.Context, start, end time.Time) ([]expense.ProjectExpense, error) {
	return f.rows, nil
}

func (f *fakeExpenseRepo) DeleteForDay(ctx context.Context, clientID uint, date time.Time) error {
	kept := f.rows[:0]
	for _, e := range f.rows {
		if !(e.ClientID == clientID && e.Date.Equal(date)) {
			kept = append(kept, e)
		}
	}
	f.rows = kept
	return nil
}

func (f *fakeExpenseRepo) DeleteByClient(ctx context.Context, clientID uint) error {
	kept := f.rows[:0]
	for _, e := range f.rows {
		if e.ClientID != clientID {
			kept = append(kept, e)
		}
	}
	f.rows = kept
	return nil
}

type fakeEmployeeRepo struct {
	employee.Repository
	rows []employee.Employee
}

func (f *fakeEmployeeRepo) FindByIDs(ctx context.Context, ids []uint) ([]employee.Employee, error) {
	return f.rows, nil
}

func newTestGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{DisableAutomaticPing: true})
	assert.NoError(t, err)
	return gormDB, mock
}

func mustDate(t *testing.T, raw string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", raw)
	assert.NoError(t, err)
	return d
}

func TestService_AddClient_CaseInsensitiveDuplicate(t *testing.T) {
	gormDB, _ := newTestGorm(t)
	repo := newFakeRepo(&Client{ID: 1, Name: "Area A", Location: "Utara"})
	svc := NewService(gormDB, repo, &fakeExpenseRepo{}, &fakeEmployeeRepo{}, nil)

	_, err := svc.AddClient(context.Background(), CreateClientRequest{Name: "area a", Location: "Selatan"})
	assert.ErrorIs(t, err, projecterrors.ErrClientNameExists)
}

func TestService_AddClient_TrimsAndSaves(t *testing.T) {
	gormDB, _ := newTestGorm(t)
	repo := newFakeRepo()
	svc := NewService(gormDB, repo, &fakeExpenseRepo{}, &fakeEmployeeRepo{}, nil)

	resp, err := svc.AddClient(context.Background(), CreateClientRequest{Name: "  Area B ", Location: " Timur "})
	assert.NoError(t, err)
	assert.Equal(t, "Area B", resp.Name)
	assert.Equal(t, "Timur", resp.Location)
}

func TestService_AddClient_NameTooLong(t *testing.T) {
	gormDB, _ := newTestGorm(t)
	svc := NewService(gormDB, newFakeRepo(), &fakeExpenseRepo{}, &fakeEmployeeRepo{}, nil)

	_, err := svc.AddClient(context.Background(), CreateClientRequest{Name: "NamaProyekPanjangBanget", Location: "X"})
	assert.ErrorIs(t, err, projecterrors.ErrNameTooLong)
}

func TestService_AssignWork_IsIdempotent(t *testing.T) {
	gormDB, _ := newTestGorm(t)
	repo := newFakeRepo(&Client{ID: 1, Name: "Area A"})
	svc := NewService(gormDB, repo, &fakeExpenseRepo{}, &fakeEmployeeRepo{}, nil)

	req := AssignWorkRequest{EmployeeID: 4, ClientID: 1, Date: "2024-03-02"}
	assert.NoError(t, svc.AssignWork(context.Background(), req))
	assert.NoError(t, svc.AssignWork(context.Background(), req))

	assert.Len(t, repo.assignments, 1)
}

func TestService_UpdateWorkforce_ReplacesDaySet(t *testing.T) {
	gormDB, mock := newTestGorm(t)
	repo := newFakeRepo(&Client{ID: 1, Name: "Area A"})
	date := mustDate(t, "2024-03-02")
	repo.assignments = []WorkAssignment{
		{EmployeeID: 1, ClientID: 1, Date: date},
		{EmployeeID: 2, ClientID: 1, Date: date},
		{EmployeeID: 3, ClientID: 2, Date: date},
	}
	svc := NewService(gormDB, repo, &fakeExpenseRepo{}, &fakeEmployeeRepo{}, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := svc.UpdateWorkforce(context.Background(), UpdateWorkforceRequest{
		ClientID:    1,
		Date:        "2024-03-02",
		EmployeeIDs: []uint{5, 6, 6},
	})
	assert.NoError(t, err)

	// Set lama klien 1 diganti total, klien 2 tidak tersentuh, duplikat dibuang
	assert.Len(t, repo.assignments, 3)
	ids := map[uint]bool{}
	for _, a := range repo.assignments {
		if a.ClientID == 1 {
			ids[a.EmployeeID] = true
		}
	}
	assert.Equal(t, map[uint]bool{5: true, 6: true}, ids)
	assert.Contains(t, repo.touched, uint(1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_UpdateWorkforce_EmptySetClearsDay(t *testing.T) {
	gormDB, mock := newTestGorm(t)
	repo := newFakeRepo(&Client{ID: 1, Name: "Area A"})
	repo.assignments = []WorkAssignment{
		{EmployeeID: 1, ClientID: 1, Date: mustDate(t, "2024-03-02")},
	}
	svc := NewService(gormDB, repo, &fakeExpenseRepo{}, &fakeEmployeeRepo{}, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := svc.UpdateWorkforce(context.Background(), UpdateWorkforceRequest{
		ClientID: 1,
		Date:     "2024-03-02",
	})
	assert.NoError(t, err)
	assert.Empty(t, repo.assignments)
}

func TestService_LogMoney_ClampsAndTouches(t *testing.T) {
	gormDB, _ := newTestGorm(t)
	repo := newFakeRepo(&Client{ID: 1, Name: "Area A"})
	svc := NewService(gormDB, repo, &fakeExpenseRepo{}, &fakeEmployeeRepo{}, nil)
	ctx := context.Background()

	err := svc.LogMoney(ctx, LogMoneyRequest{ClientID: 1, Date: "2024-03-02", Amount: 2_500_000})
	assert.NoError(t, err)
	assert.True(t, repo.money[0].Amount.Equal(decimal.NewFromInt(1_000_000)))

	err = svc.LogMoney(ctx, LogMoneyRequest{ClientID: 1, Date: "2024-03-02", Amount: -50})
	assert.NoError(t, err)
	assert.True(t, repo.money[0].Amount.IsZero())

	assert.Contains(t, repo.touched, uint(1))
}

func TestService_DeleteEntry_PurgesAllThreeLedgers(t *testing.T) {
	gormDB, mock := newTestGorm(t)
	date := mustDate(t, "2024-03-02")
	repo := newFakeRepo(&Client{ID: 1, Name: "Area A"})
	repo.assignments = []WorkAssignment{{EmployeeID: 1, ClientID: 1, Date: date}}
	repo.money = []MoneyTaken{{ClientID: 1, Date: date, Amount: decimal.NewFromInt(500)}}
	expenses := &fakeExpenseRepo{rows: []expense.ProjectExpense{
		{ID: 1, ClientID: 1, Date: date, Name: "Semen", Amount: decimal.NewFromInt(80)},
	}}
	svc := NewService(gormDB, repo, expenses, &fakeEmployeeRepo{}, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := svc.DeleteEntry(context.Background(), DeleteEntryRequest{ClientID: 1, Date: "2024-03-02"})
	assert.NoError(t, err)
	assert.Empty(t, repo.assignments)
	assert.Empty(t, repo.money)
	assert.Empty(t, expenses.rows)
	assert.Contains(t, repo.touched, uint(1))
}

func TestService_GetClientMonthlyData_ProfitRollup(t *testing.T) {
	gormDB, _ := newTestGorm(t)
	date := mustDate(t, "2024-03-02")

	repo := newFakeRepo(&Client{ID: 1, Name: "Area A"})
	repo.assignments = []WorkAssignment{
		{EmployeeID: 1, ClientID: 1, Date: date},
		{EmployeeID: 2, ClientID: 1, Date: date},
	}
	repo.money = []MoneyTaken{{ClientID: 1, Date: date, Amount: decimal.NewFromInt(500)}}
	expenses := &fakeExpenseRepo{rows: []expense.ProjectExpense{
		{ID: 1, ClientID: 1, Date: date, Name: "Semen", Amount: decimal.NewFromInt(100)},
	}}
	workers := &fakeEmployeeRepo{rows: []employee.Employee{
		{ID: 1, Name: "Budi", DailyWage: decimal.NewFromInt(100)},
		{ID: 2, Name: "Siti", DailyWage: decimal.NewFromInt(150)},
	}}

	svc := NewService(gormDB, repo, expenses, workers, nil)

	resp, err := svc.GetClientMonthlyData(context.Background(), 2024, 2)
	assert.NoError(t, err)

	assert.Len(t, resp.Assignments, 2)
	assert.Equal(t, "Budi", resp.Assignments[0].EmployeeName)
	assert.Equal(t, "100.00", resp.Assignments[0].DailyWage)

	assert.Len(t, resp.Summaries, 1)
	summary := resp.Summaries[0]
	assert.Equal(t, uint(1), summary.ClientID)
	assert.Equal(t, "500.00", summary.Received)
	assert.Equal(t, "250.00", summary.LaborCost)
	assert.Equal(t, "100.00", summary.Expenses)
	// 500 - 250 - 100
	assert.Equal(t, "150.00", summary.Profit)
	assert.Equal(t, 2, summary.WorkerDays)
}

func TestService_GetClientMonthlyData_InvalidMonth(t *testing.T) {
	gormDB, _ := newTestGorm(t)
	svc := NewService(gormDB, newFakeRepo(), &fakeExpenseRepo{}, &fakeEmployeeRepo{}, nil)

	_, err := svc.GetClientMonthlyData(context.Background(), 2024, 12)
	assert.Error(t, err)
}

func TestService_DeleteClient_CascadesHistory(t *testing.T) {
	gormDB, mock := newTestGorm(t)
	date := mustDate(t, "2024-03-02")
	repo := newFakeRepo(&Client{ID: 1, Name: "Area A"}, &Client{ID: 2, Name: "Area B"})
	repo.assignments = []WorkAssignment{
		{EmployeeID: 1, ClientID: 1, Date: date},
		{EmployeeID: 1, ClientID: 2, Date: date},
	}
	repo.money = []MoneyTaken{{ClientID: 1, Date: date, Amount: decimal.NewFromInt(10)}}
	expenses := &fakeExpenseRepo{rows: []expense.ProjectExpense{
		{ID: 1, ClientID: 1, Date: date, Name: "Pasir", Amount: decimal.NewFromInt(20)},
	}}
	svc := NewService(gormDB, repo, expenses, &fakeEmployeeRepo{}, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	assert.NoError(t, svc.DeleteClient(context.Background(), 1))

	_, ok := repo.clients[1]
	assert.False(t, ok)
	assert.Len(t, repo.assignments, 1)
	assert.Equal(t, uint(2), repo.assignments[0].ClientID)
	assert.Empty(t, repo.money)
	assert.Empty(t, expenses.rows)
}
