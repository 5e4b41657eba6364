package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/peoplecore/attendance-backend-go/internal/domain/leave"
	"github.com/peoplecore/attendance-backend-go/internal/pkg/database"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

func (r *leaveBalanceRepositoryImpl) GetByEmployeeAndYear(ctx context.Context, employeeID int64, year int) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, year, total_days, used_days, remaining
		FROM leave_balances
		WHERE employee_id = $1 AND year = $2
	`

	var balance leave.LeaveBalance
	err := q.QueryRow(ctx, query, employeeID, year).Scan(
		&balance.ID,
		&balance.EmployeeID,
		&balance.Year,
		&balance.TotalDays,
		&balance.UsedDays,
		&balance.Remaining,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// No row yet means the default allowance, untouched.
			return leave.NewDefaultBalance(employeeID, year), nil
		}
		return leave.LeaveBalance{}, err
	}
	return balance, nil
}

func (r *leaveBalanceRepositoryImpl) AddUsedDays(ctx context.Context, employeeID int64, year, days int) error {
	q := GetQuerier(ctx, r.db)

	// Single atomic upsert: first booking of the year creates the row
	// with the default allowance, later bookings increment used_days.
	query := `
		INSERT INTO leave_balances (employee_id, year, total_days, used_days, remaining)
		VALUES ($1, $2, $3, $4, $3 - $4)
		ON CONFLICT (employee_id, year) DO UPDATE
		SET used_days = leave_balances.used_days + EXCLUDED.used_days,
		    remaining = leave_balances.total_days - (leave_balances.used_days + EXCLUDED.used_days)
	`

	_, err := q.Exec(ctx, query, employeeID, year, leave.DefaultAnnualDays, days)
	return err
}
