package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/peoplecore/attendance-backend-go/internal/domain/attendance"
	"github.com/peoplecore/attendance-backend-go/internal/pkg/database"
)

type attendanceEntryRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceEntryRepository(db *database.DB) attendance.EntryRepository {
	return &attendanceEntryRepositoryImpl{db: db}
}

func (r *attendanceEntryRepositoryImpl) Create(ctx context.Context, entry attendance.AttendanceEntry) (attendance.AttendanceEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_entries (attendance_record_id, entry_type, timestamp, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := q.QueryRow(ctx, query,
		entry.AttendanceRecordID, entry.EntryType, entry.Timestamp, entry.Reason,
	).Scan(&entry.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return attendance.AttendanceEntry{}, attendance.ErrRecordNotFound
		}
		return attendance.AttendanceEntry{}, err
	}

	return entry, nil
}

func (r *attendanceEntryRepositoryImpl) ListByRecord(ctx context.Context, recordID int64) ([]attendance.AttendanceEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, attendance_record_id, entry_type, timestamp, reason
		FROM attendance_entries
		WHERE attendance_record_id = $1
		ORDER BY timestamp ASC, id ASC
	`

	rows, err := q.Query(ctx, query, recordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []attendance.AttendanceEntry
	for rows.Next() {
		var entry attendance.AttendanceEntry
		err := rows.Scan(
			&entry.ID,
			&entry.AttendanceRecordID,
			&entry.EntryType,
			&entry.Timestamp,
			&entry.Reason,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *attendanceEntryRepositoryImpl) CountByRecord(ctx context.Context, recordID int64) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM attendance_entries WHERE attendance_record_id = $1`,
		recordID,
	).Scan(&count)
	return count, err
}

func (r *attendanceEntryRepositoryImpl) Delete(ctx context.Context, recordID, entryID int64) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx,
		`DELETE FROM attendance_entries WHERE id = $1 AND attendance_record_id = $2`,
		entryID, recordID,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return attendance.ErrEntryNotFound
	}
	return nil
}
