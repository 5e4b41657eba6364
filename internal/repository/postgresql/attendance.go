package postgresql

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/peoplecore/attendance-backend-go/internal/domain/attendance"
	"github.com/peoplecore/attendance-backend-go/internal/pkg/database"
)

type attendanceRecordRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRecordRepository(db *database.DB) attendance.RecordRepository {
	return &attendanceRecordRepositoryImpl{db: db}
}

const recordColumns = `
	r.id, r.employee_id, r.date, r.check_in_time, r.check_out_time,
	r.status, r.approval_status, r.is_confirmed, r.confirmed_at
`

func scanRecord(row pgx.Row) (attendance.AttendanceRecord, error) {
	var rec attendance.AttendanceRecord
	err := row.Scan(
		&rec.ID,
		&rec.EmployeeID,
		&rec.Date,
		&rec.CheckInTime,
		&rec.CheckOutTime,
		&rec.Status,
		&rec.ApprovalStatus,
		&rec.IsConfirmed,
		&rec.ConfirmedAt,
	)
	return rec, err
}

func (r *attendanceRecordRepositoryImpl) UpsertClockIn(ctx context.Context, employeeID int64, date time.Time, checkIn time.Time, status string, initial attendance.ApprovalStatus) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	// COALESCE keeps the first check-in of the day; only the label is
	// refreshed on repeat clock-ins.
	query := `
		INSERT INTO attendance_records (
			employee_id, date, check_in_time, status, approval_status, is_confirmed
		) VALUES ($1, $2, $3, $4, $5, FALSE)
		ON CONFLICT (employee_id, date) DO UPDATE
		SET check_in_time = COALESCE(attendance_records.check_in_time, EXCLUDED.check_in_time),
		    status = EXCLUDED.status
		RETURNING id, employee_id, date, check_in_time, check_out_time,
		          status, approval_status, is_confirmed, confirmed_at
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID, date, checkIn, status, initial))
	if err != nil {
		return attendance.AttendanceRecord{}, err
	}
	return rec, nil
}

func (r *attendanceRecordRepositoryImpl) GetByID(ctx context.Context, id int64) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `,
		       TRIM(e.first_name || ' ' || e.last_name) AS employee_name,
		       (SELECT COUNT(*) FROM attendance_entries ae WHERE ae.attendance_record_id = r.id) AS entries_count
		FROM attendance_records r
		JOIN employees e ON r.employee_id = e.id
		WHERE r.id = $1
	`

	var rec attendance.AttendanceRecord
	err := q.QueryRow(ctx, query, id).Scan(
		&rec.ID,
		&rec.EmployeeID,
		&rec.Date,
		&rec.CheckInTime,
		&rec.CheckOutTime,
		&rec.Status,
		&rec.ApprovalStatus,
		&rec.IsConfirmed,
		&rec.ConfirmedAt,
		&rec.EmployeeName,
		&rec.EntriesCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceRecord{}, attendance.ErrRecordNotFound
		}
		return attendance.AttendanceRecord{}, err
	}
	return rec, nil
}

func (r *attendanceRecordRepositoryImpl) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.AttendanceRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.EmployeeIDs != nil {
		conditions = append(conditions, fmt.Sprintf("r.employee_id = ANY($%d)", argIndex))
		args = append(args, filter.EmployeeIDs)
		argIndex++
	}
	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("r.employee_id = $%d", argIndex))
		args = append(args, *filter.EmployeeID)
		argIndex++
	}
	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("r.date >= $%d", argIndex))
		args = append(args, *filter.StartDate)
		argIndex++
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("r.date <= $%d", argIndex))
		args = append(args, *filter.EndDate)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Sort column and direction come from a validated whitelist, never
	// from raw user input.
	sortBy := "date"
	if slices.Contains(attendance.SortFields, filter.SortBy) {
		sortBy = filter.SortBy
	}
	order := "DESC"
	if strings.EqualFold(filter.Order, "asc") {
		order = "ASC"
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM attendance_records r %s`, whereClause)

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT `+recordColumns+`,
		       TRIM(e.first_name || ' ' || e.last_name) AS employee_name,
		       (SELECT COUNT(*) FROM attendance_entries ae WHERE ae.attendance_record_id = r.id) AS entries_count
		FROM attendance_records r
		JOIN employees e ON r.employee_id = e.id
		%s
		ORDER BY r.%s %s, r.id %s
		LIMIT $%d OFFSET $%d
	`, whereClause, sortBy, order, order, argIndex, argIndex+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []attendance.AttendanceRecord
	for rows.Next() {
		var rec attendance.AttendanceRecord
		err := rows.Scan(
			&rec.ID,
			&rec.EmployeeID,
			&rec.Date,
			&rec.CheckInTime,
			&rec.CheckOutTime,
			&rec.Status,
			&rec.ApprovalStatus,
			&rec.IsConfirmed,
			&rec.ConfirmedAt,
			&rec.EmployeeName,
			&rec.EntriesCount,
		)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *attendanceRecordRepositoryImpl) SetCheckOut(ctx context.Context, id int64, checkOut time.Time) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx,
		`UPDATE attendance_records SET check_out_time = $2 WHERE id = $1`,
		id, checkOut,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}
	return nil
}

func (r *attendanceRecordRepositoryImpl) SetStatusLabel(ctx context.Context, id int64, status string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx,
		`UPDATE attendance_records SET status = $2 WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}
	return nil
}

func (r *attendanceRecordRepositoryImpl) Confirm(ctx context.Context, id int64, confirmedAt time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `
		UPDATE attendance_records
		SET is_confirmed = TRUE, confirmed_at = $2, approval_status = $3
		WHERE id = $1 AND is_confirmed = FALSE
	`, id, confirmedAt, attendance.StatusPendingManager)
	if err != nil {
		return false, err
	}
	return commandTag.RowsAffected() > 0, nil
}

func (r *attendanceRecordRepositoryImpl) TransitionApproval(ctx context.Context, id int64, from, to attendance.ApprovalStatus) (bool, error) {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `
		UPDATE attendance_records
		SET approval_status = $3
		WHERE id = $1 AND approval_status = $2
	`, id, from, to)
	if err != nil {
		return false, err
	}
	return commandTag.RowsAffected() > 0, nil
}

func (r *attendanceRecordRepositoryImpl) Approve(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx,
		`UPDATE attendance_records SET approval_status = $2 WHERE id = $1`,
		id, attendance.StatusApproved,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}
	return nil
}

func (r *attendanceRecordRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM attendance_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}
	return nil
}

func (r *attendanceRecordRepositoryImpl) CountToday(ctx context.Context, date time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM attendance_records WHERE date = $1`,
		date,
	).Scan(&count)
	return count, err
}
