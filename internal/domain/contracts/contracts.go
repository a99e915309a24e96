package contracts

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Mailer is satisfied by the platform email package.
type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

type Contract struct {
	ContractID   int64     `json:"contractId"`
	EmployeeID   int64     `json:"employeeId"`
	EmployeeName string    `json:"employeeName"`
	Email        string    `json:"email"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	Notified     bool      `json:"notified"`
}

type Service struct {
	DB     *pgxpool.Pool
	Mailer Mailer
	From   string
	HRTo   string
}

func NewService(db *pgxpool.Pool, mailer Mailer, from, hrTo string) *Service {
	return &Service{DB: db, Mailer: mailer, From: from, HRTo: hrTo}
}

// Create registers a contract period for an employee.
func (s *Service) Create(ctx context.Context, employeeID int64, startDate, endDate time.Time) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO contracts (employee_id, start_date, end_date)
    VALUES ($1, $2, $3)
    RETURNING contract_id
  `, employeeID, startDate, endDate).Scan(&id)
	return id, err
}

func (s *Service) List(ctx context.Context) ([]Contract, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT c.contract_id, c.employee_id, e.first_name || ' ' || e.last_name,
           e.email, c.start_date, c.end_date, c.notified
    FROM contracts c
    JOIN employees e ON e.employee_id = c.employee_id
    ORDER BY c.end_date ASC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanContracts(rows)
}

// Expiring returns un-notified contracts ending within the window.
func (s *Service) Expiring(ctx context.Context, window time.Duration) ([]Contract, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT c.contract_id, c.employee_id, e.first_name || ' ' || e.last_name,
           e.email, c.start_date, c.end_date, c.notified
    FROM contracts c
    JOIN employees e ON e.employee_id = c.employee_id
    WHERE c.notified = false
      AND c.end_date >= CURRENT_DATE
      AND c.end_date <= CURRENT_DATE + $1::interval
    ORDER BY c.end_date ASC
  `, fmt.Sprintf("%d days", int(window.Hours()/24)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanContracts(rows)
}

// NotifyExpiring emails HR about each contract approaching its end date and
// marks it notified so the next sweep skips it. A send failure leaves the
// contract unmarked for retry on the next run.
func (s *Service) NotifyExpiring(ctx context.Context, window time.Duration) (int, error) {
	expiring, err := s.Expiring(ctx, window)
	if err != nil {
		return 0, err
	}

	notified := 0
	for _, c := range expiring {
		subject := fmt.Sprintf("Contract expiring: %s", c.EmployeeName)
		body := fmt.Sprintf("The contract of %s (employee %d) ends on %s.",
			c.EmployeeName, c.EmployeeID, c.EndDate.Format("2006-01-02"))
		if err := s.Mailer.Send(ctx, s.From, s.HRTo, subject, body); err != nil {
			slog.Warn("contract notice send failed", "contractId", c.ContractID, "err", err)
			continue
		}
		if _, err := s.DB.Exec(ctx, `
      UPDATE contracts SET notified = true WHERE contract_id = $1
    `, c.ContractID); err != nil {
			slog.Warn("contract notice flag update failed", "contractId", c.ContractID, "err", err)
			continue
		}
		notified++
	}
	return notified, nil
}

func scanContracts(rows pgx.Rows) ([]Contract, error) {
	list := []Contract{}
	for rows.Next() {
		var c Contract
		if err := rows.Scan(&c.ContractID, &c.EmployeeID, &c.EmployeeName,
			&c.Email, &c.StartDate, &c.EndDate, &c.Notified); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
