package project

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ak-attendance/internal/billing"
	"ak-attendance/internal/employee"
	"ak-attendance/internal/events"
	"ak-attendance/internal/expense"
	"ak-attendance/internal/messaging/kafka"
	projecterrors "ak-attendance/internal/project/errors"
	"ak-attendance/internal/shared/apperror"
	"ak-attendance/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxNameLen = 15

var maxAmount = decimal.NewFromInt(1_000_000)

//go:generate mockgen -source=project_service.go -destination=mock/project_service_mock.go -package=mock
type Service interface {
	GetClients(ctx context.Context) ([]ClientResponse, error)
	AddClient(ctx context.Context, req CreateClientRequest) (*ClientResponse, error)
	UpdateClient(ctx context.Context, id uint, req UpdateClientRequest) (*ClientResponse, error)
	DeleteClient(ctx context.Context, id uint) error
	AssignWork(ctx context.Context, req AssignWorkRequest) error
	UnassignWork(ctx context.Context, req AssignWorkRequest) error
	UpdateWorkforce(ctx context.Context, req UpdateWorkforceRequest) error
	LogMoney(ctx context.Context, req LogMoneyRequest) error
	DeleteEntry(ctx context.Context, req DeleteEntryRequest) error
	GetClientMonthlyData(ctx context.Context, year, month int) (ClientMonthlyDataResponse, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	expenses  expense.Repository
	employees employee.Repository
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	expenses expense.Repository,
	employees employee.Repository,
	outbox kafka.OutboxRepository,
) Service {
	return &service{
		db:        db,
		repo:      repo,
		expenses:  expenses,
		employees: employees,
		outbox:    outbox,
		logger:    zap.L().Named("project.service"),
	}
}

func (s *service) GetClients(ctx context.Context) ([]ClientResponse, error) {
	rows, err := s.repo.FindClients(ctx)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to fetch clients", http.StatusInternalServerError)
	}
	out := make([]ClientResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toClientResponse(row))
	}
	return out, nil
}

func (s *service) AddClient(ctx context.Context, req CreateClientRequest) (*ClientResponse, error) {
	name := strings.TrimSpace(req.Name)
	location := strings.TrimSpace(req.Location)
	if name == "" || len(name) > maxNameLen {
		return nil, projecterrors.ErrNameTooLong
	}
	if location == "" || len(location) > maxNameLen {
		return nil, projecterrors.ErrLocationTooLong
	}

	// "area a" dan "Area A" dianggap situs yang sama
	if _, err := s.repo.FindClientByNameFold(ctx, name); err == nil {
		return nil, projecterrors.ErrClientNameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to check client name", http.StatusInternalServerError)
	}

	row := &Client{Name: name, Location: location}
	if err := s.repo.CreateClient(ctx, row); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to save client", http.StatusInternalServerError)
	}

	s.logger.Info("client created",
		zap.Uint("client_id", row.ID),
		zap.String("name", row.Name),
	)
	resp := toClientResponse(*row)
	return &resp, nil
}

func (s *service) UpdateClient(ctx context.Context, id uint, req UpdateClientRequest) (*ClientResponse, error) {
	row, err := s.findClient(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" || len(name) > maxNameLen {
			return nil, projecterrors.ErrNameTooLong
		}
		if !strings.EqualFold(name, row.Name) {
			if _, err := s.repo.FindClientByNameFold(ctx, name); err == nil {
				return nil, projecterrors.ErrClientNameExists
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to check client name", http.StatusInternalServerError)
			}
		}
		row.Name = name
	}
	if req.Location != nil {
		location := strings.TrimSpace(*req.Location)
		if location == "" || len(location) > maxNameLen {
			return nil, projecterrors.ErrLocationTooLong
		}
		row.Location = location
	}

	if err := s.repo.UpdateClient(ctx, row); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to update client", http.StatusInternalServerError)
	}
	resp := toClientResponse(*row)
	return &resp, nil
}

// DeleteClient removes the site and every row hanging off it. One
// transaction: either the whole history disappears or none of it does.
func (s *service) DeleteClient(ctx context.Context, id uint) error {
	if _, err := s.findClient(ctx, id); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		etx := s.expenses.WithTx(tx)

		if err := qtx.DeleteAssignmentsByClient(ctx, id); err != nil {
			return err
		}
		if err := qtx.DeleteMoneyByClient(ctx, id); err != nil {
			return err
		}
		if err := etx.DeleteByClient(ctx, id); err != nil {
			return err
		}
		return qtx.DeleteClient(ctx, id)
	})
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "failed to delete client", http.StatusInternalServerError)
	}

	s.logger.Info("client deleted", zap.Uint("client_id", id))
	return nil
}

func (s *service) AssignWork(ctx context.Context, req AssignWorkRequest) error {
	date, err := parseDate(req.Date)
	if err != nil {
		return err
	}
	if _, err := s.findClient(ctx, req.ClientID); err != nil {
		return err
	}

	exists, err := s.repo.AssignmentExists(ctx, req.EmployeeID, req.ClientID, date)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "failed to check assignment", http.StatusInternalServerError)
	}
	if exists {
		// Klik dobel di grid, baris sudah ada
		return nil
	}

	row := &WorkAssignment{
		EmployeeID: req.EmployeeID,
		ClientID:   req.ClientID,
		Date:       date,
	}
	if err := s.repo.CreateAssignment(ctx, row); err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "failed to save assignment", http.StatusInternalServerError)
	}

	s.touchAndNotify(ctx, req.ClientID, req.Date, "workforce.assigned")
	return nil
}

func (s *service) UnassignWork(ctx context.Context, req AssignWorkRequest) error {
	date, err := parseDate(req.Date)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteAssignment(ctx, req.EmployeeID, req.ClientID, date); err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "failed to delete assignment", http.StatusInternalServerError)
	}

	s.touchAndNotify(ctx, req.ClientID, req.Date, "workforce.unassigned")
	return nil
}

// UpdateWorkforce replaces the entire crew for one client-day: the
// day's assignments are dropped and the submitted set reinserted, all
// in one transaction. An empty set clears the day.
func (s *service) UpdateWorkforce(ctx context.Context, req UpdateWorkforceRequest) error {
	date, err := parseDate(req.Date)
	if err != nil {
		return err
	}
	if _, err := s.findClient(ctx, req.ClientID); err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		if err := qtx.DeleteAssignmentsForDay(ctx, req.ClientID, date); err != nil {
			return err
		}
		for _, employeeID := range dedupe(req.EmployeeIDs) {
			row := &WorkAssignment{
				EmployeeID: employeeID,
				ClientID:   req.ClientID,
				Date:       date,
			}
			if err := qtx.CreateAssignment(ctx, row); err != nil {
				return err
			}
		}
		if err := qtx.TouchClient(ctx, req.ClientID); err != nil {
			return err
		}
		return s.appendProjectEvent(ctx, tx, req.ClientID, req.Date, "workforce.replaced")
	})
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "failed to update workforce", http.StatusInternalServerError)
	}

	s.logger.Info("workforce replaced",
		zap.Uint("client_id", req.ClientID),
		zap.String("date", req.Date),
		zap.Int("workers", len(req.EmployeeIDs)),
	)
	return nil
}

func (s *service) LogMoney(ctx context.Context, req LogMoneyRequest) error {
	date, err := parseDate(req.Date)
	if err != nil {
		return err
	}
	if _, err := s.findClient(ctx, req.ClientID); err != nil {
		return err
	}

	amount := decimal.NewFromFloat(req.Amount)
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	if amount.GreaterThan(maxAmount) {
		amount = maxAmount
	}

	if err := s.repo.UpsertMoneyTaken(ctx, req.ClientID, date, amount); err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "failed to save money taken", http.StatusInternalServerError)
	}

	s.touchAndNotify(ctx, req.ClientID, req.Date, "money.logged")
	return nil
}

// DeleteEntry purges one client-day across all three ledgers:
// assignments, money taken, and expenses.
func (s *service) DeleteEntry(ctx context.Context, req DeleteEntryRequest) error {
	date, err := parseDate(req.Date)
	if err != nil {
		return err
	}
	if _, err := s.findClient(ctx, req.ClientID); err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		etx := s.expenses.WithTx(tx)

		if err := qtx.DeleteAssignmentsForDay(ctx, req.ClientID, date); err != nil {
			return err
		}
		if err := qtx.DeleteMoneyForDay(ctx, req.ClientID, date); err != nil {
			return err
		}
		if err := etx.DeleteForDay(ctx, req.ClientID, date); err != nil {
			return err
		}
		if err := qtx.TouchClient(ctx, req.ClientID); err != nil {
			return err
		}
		return s.appendProjectEvent(ctx, tx, req.ClientID, req.Date, "entry.deleted")
	})
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "failed to delete entry", http.StatusInternalServerError)
	}
	return nil
}

// GetClientMonthlyData returns the project ledger scoped to one billing
// period (2nd of the month through the 1st of the next). Labor cost is
// derived from each worker's current daily wage, not a snapshot.
func (s *service) GetClientMonthlyData(ctx context.Context, year, month int) (ClientMonthlyDataResponse, error) {
	if month < 0 || month > 11 {
		return ClientMonthlyDataResponse{}, projecterrors.ErrInvalidDate
	}
	start, end := billing.PeriodBounds(year, month)

	assignments, err := s.repo.FindAssignmentsRange(ctx, start, end)
	if err != nil {
		return ClientMonthlyDataResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "failed to fetch assignments", http.StatusInternalServerError)
	}
	money, err := s.repo.FindMoneyRange(ctx, start, end)
	if err != nil {
		return ClientMonthlyDataResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "failed to fetch money taken", http.StatusInternalServerError)
	}
	expenseRows, err := s.expenses.FindRange(ctx, start, end)
	if err != nil {
		return ClientMonthlyDataResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "failed to fetch expenses", http.StatusInternalServerError)
	}

	workers, err := s.lookupWorkers(ctx, assignments)
	if err != nil {
		return ClientMonthlyDataResponse{}, err
	}

	resp := ClientMonthlyDataResponse{
		Assignments: make([]AssignmentResponse, 0, len(assignments)),
		MoneyTaken:  make([]MoneyTakenResponse, 0, len(money)),
		Expenses:    make([]ExpenseLineResponse, 0, len(expenseRows)),
	}

	type rollup struct {
		received   decimal.Decimal
		laborCost  decimal.Decimal
		expenses   decimal.Decimal
		workerDays int
	}
	rollups := map[uint]*rollup{}
	clientOrder := []uint{}
	get := func(clientID uint) *rollup {
		if r, ok := rollups[clientID]; ok {
			return r
		}
		r := &rollup{}
		rollups[clientID] = r
		clientOrder = append(clientOrder, clientID)
		return r
	}

	for _, a := range assignments {
		w := workers[a.EmployeeID]
		resp.Assignments = append(resp.Assignments, AssignmentResponse{
			EmployeeID:   a.EmployeeID,
			EmployeeName: w.name,
			ClientID:     a.ClientID,
			Date:         a.Date.Format(billing.DateLayout),
			DailyWage:    w.wage.StringFixed(2),
		})
		r := get(a.ClientID)
		r.laborCost = r.laborCost.Add(w.wage)
		r.workerDays++
	}
	for _, m := range money {
		resp.MoneyTaken = append(resp.MoneyTaken, MoneyTakenResponse{
			ClientID: m.ClientID,
			Date:     m.Date.Format(billing.DateLayout),
			Amount:   m.Amount.StringFixed(2),
		})
		r := get(m.ClientID)
		r.received = r.received.Add(m.Amount)
	}
	for _, e := range expenseRows {
		resp.Expenses = append(resp.Expenses, ExpenseLineResponse{
			ID:       e.ID,
			ClientID: e.ClientID,
			Date:     e.Date.Format(billing.DateLayout),
			Name:     e.Name,
			Amount:   e.Amount.StringFixed(2),
		})
		r := get(e.ClientID)
		r.expenses = r.expenses.Add(e.Amount)
	}

	resp.Summaries = make([]ClientSummary, 0, len(clientOrder))
	for _, clientID := range clientOrder {
		r := rollups[clientID]
		profit := r.received.Sub(r.laborCost).Sub(r.expenses)
		resp.Summaries = append(resp.Summaries, ClientSummary{
			ClientID:   clientID,
			Received:   r.received.StringFixed(2),
			LaborCost:  r.laborCost.StringFixed(2),
			Expenses:   r.expenses.StringFixed(2),
			Profit:     profit.StringFixed(2),
			WorkerDays: r.workerDays,
		})
	}

	return resp, nil
}

type workerInfo struct {
	name string
	wage decimal.Decimal
}

// lookupWorkers resolves names and current wages for every employee
// referenced by the period's assignments, archived workers included.
func (s *service) lookupWorkers(ctx context.Context, assignments []WorkAssignment) (map[uint]workerInfo, error) {
	seen := map[uint]bool{}
	ids := make([]uint, 0)
	for _, a := range assignments {
		if !seen[a.EmployeeID] {
			seen[a.EmployeeID] = true
			ids = append(ids, a.EmployeeID)
		}
	}

	rows, err := s.employees.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to fetch workers", http.StatusInternalServerError)
	}

	out := make(map[uint]workerInfo, len(rows))
	for _, e := range rows {
		out[e.ID] = workerInfo{name: e.Name, wage: e.DailyWage}
	}
	return out, nil
}

func (s *service) findClient(ctx context.Context, id uint) (*Client, error) {
	row, err := s.repo.FindClientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, projecterrors.ErrClientNotFound
		}
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to fetch client", http.StatusInternalServerError)
	}
	return row, nil
}

// touchAndNotify bumps the client's activity timestamp and queues a
// mutation event. Both are best-effort for single-row mutations: the
// write itself already landed.
func (s *service) touchAndNotify(ctx context.Context, clientID uint, date, eventType string) {
	if err := s.repo.TouchClient(ctx, clientID); err != nil {
		s.logger.Warn("failed to touch client",
			zap.Uint("client_id", clientID),
			zap.Error(err),
		)
	}
	if err := s.appendProjectEvent(ctx, nil, clientID, date, eventType); err != nil {
		s.logger.Warn("failed to queue project event",
			zap.Uint("client_id", clientID),
			zap.Error(err),
		)
	}
}

func (s *service) appendProjectEvent(ctx context.Context, tx *gorm.DB, clientID uint, date, eventType string) error {
	if s.outbox == nil {
		return nil
	}

	payload, err := json.Marshal(events.ProjectMutatedEvent{
		EventType:  eventType,
		ClientID:   clientID,
		Date:       date,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	outbox := s.outbox
	if tx != nil {
		outbox = s.outbox.WithTx(tx)
	}
	return outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "client",
		AggregateID:   fmt.Sprintf("%d", clientID),
		EventType:     eventType,
		Topic:         events.ProjectActivityTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func parseDate(raw string) (time.Time, error) {
	date, err := time.Parse(billing.DateLayout, raw)
	if err != nil {
		return time.Time{}, projecterrors.ErrInvalidDate
	}
	return date, nil
}

func dedupe(ids []uint) []uint {
	seen := map[uint]bool{}
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func toClientResponse(c Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Location:  c.Location,
		UpdatedAt: c.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
