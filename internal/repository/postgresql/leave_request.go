package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/peoplecore/attendance-backend-go/internal/domain/leave"
	"github.com/peoplecore/attendance-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.RequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	lr.id, lr.employee_id, lr.leave_type_id, lr.start_date, lr.end_date,
	lr.reason, lr.status, lr.applied_at, lr.reviewed_by, lr.reviewed_at
`

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			employee_id, leave_type_id, start_date, end_date, reason, status, applied_at
		) VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, applied_at
	`

	err := q.QueryRow(ctx, query,
		request.EmployeeID, request.LeaveTypeID, request.StartDate,
		request.EndDate, request.Reason, request.Status,
	).Scan(&request.ID, &request.AppliedAt)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return request, nil
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id int64) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `,
		       TRIM(e.first_name || ' ' || e.last_name) AS employee_name,
		       lt.name AS leave_type_name
		FROM leave_requests lr
		JOIN employees e ON lr.employee_id = e.id
		JOIN leave_types lt ON lr.leave_type_id = lt.id
		WHERE lr.id = $1
	`

	var request leave.LeaveRequest
	err := q.QueryRow(ctx, query, id).Scan(
		&request.ID,
		&request.EmployeeID,
		&request.LeaveTypeID,
		&request.StartDate,
		&request.EndDate,
		&request.Reason,
		&request.Status,
		&request.AppliedAt,
		&request.ReviewedBy,
		&request.ReviewedAt,
		&request.EmployeeName,
		&request.LeaveTypeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return request, nil
}

func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.ListFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := ""
	var args []interface{}
	argIndex := 1

	if filter.EmployeeIDs != nil {
		whereClause = fmt.Sprintf("WHERE lr.employee_id = ANY($%d)", argIndex)
		args = append(args, filter.EmployeeIDs)
		argIndex++
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM leave_requests lr %s`, whereClause)

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT `+leaveRequestColumns+`,
		       TRIM(e.first_name || ' ' || e.last_name) AS employee_name,
		       lt.name AS leave_type_name
		FROM leave_requests lr
		JOIN employees e ON lr.employee_id = e.id
		JOIN leave_types lt ON lr.leave_type_id = lt.id
		%s
		ORDER BY lr.applied_at DESC, lr.id DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var request leave.LeaveRequest
		err := rows.Scan(
			&request.ID,
			&request.EmployeeID,
			&request.LeaveTypeID,
			&request.StartDate,
			&request.EndDate,
			&request.Reason,
			&request.Status,
			&request.AppliedAt,
			&request.ReviewedBy,
			&request.ReviewedAt,
			&request.EmployeeName,
			&request.LeaveTypeName,
		)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

func (r *leaveRequestRepositoryImpl) ApprovePending(ctx context.Context, id, reviewerID int64, reviewedAt time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `
		UPDATE leave_requests
		SET status = $2, reviewed_by = $3, reviewed_at = $4
		WHERE id = $1 AND status = $5
	`, id, leave.StatusApproved, reviewerID, reviewedAt, leave.StatusPending)
	if err != nil {
		return false, err
	}
	return commandTag.RowsAffected() > 0, nil
}

func (r *leaveRequestRepositoryImpl) Reject(ctx context.Context, id, reviewerID int64, reviewedAt time.Time, requirePending bool) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2, reviewed_by = $3, reviewed_at = $4
		WHERE id = $1
	`
	args := []interface{}{id, leave.StatusRejected, reviewerID, reviewedAt}
	if requirePending {
		query += ` AND status = $5`
		args = append(args, leave.StatusPending)
	}

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return false, err
	}
	return commandTag.RowsAffected() > 0, nil
}

func (r *leaveRequestRepositoryImpl) DeletePending(ctx context.Context, id int64) (bool, error) {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx,
		`DELETE FROM leave_requests WHERE id = $1 AND status = $2`,
		id, leave.StatusPending,
	)
	if err != nil {
		return false, err
	}
	return commandTag.RowsAffected() > 0, nil
}

func (r *leaveRequestRepositoryImpl) CountPending(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM leave_requests WHERE status = $1`,
		leave.StatusPending,
	).Scan(&count)
	return count, err
}
