package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jfraser77/hrops-backend/internal/domain/termination"
	"github.com/jfraser77/hrops-backend/internal/pkg/database"
)

type terminationRepositoryImpl struct {
	db database.Querier
}

func NewTerminationRepository(db database.Querier) termination.Repository {
	return &terminationRepositoryImpl{db: db}
}

const terminationColumns = `
	t.id, t.employee_name, t.employee_email, t.job_title, t.department,
	t.termination_date, t.termination_reason, t.initiated_by, t.status,
	t.tracking_number, t.equipment_disposition, t.completed_by_user_id,
	t.checklist, t.is_overdue, t.created_at, t.updated_at, u.name`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTermination(row rowScanner) (termination.Termination, error) {
	var t termination.Termination
	err := row.Scan(
		&t.ID,
		&t.EmployeeName,
		&t.EmployeeEmail,
		&t.JobTitle,
		&t.Department,
		&t.TerminationDate,
		&t.TerminationReason,
		&t.InitiatedBy,
		&t.Status,
		&t.TrackingNumber,
		&t.EquipmentDisposition,
		&t.CompletedByUserID,
		&t.Checklist,
		&t.IsOverdue,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.CompletedByUserName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return termination.Termination{}, termination.ErrTerminationNotFound
		}
		return termination.Termination{}, err
	}
	return t, nil
}

func (r *terminationRepositoryImpl) Create(ctx context.Context, t termination.Termination) (termination.Termination, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO terminations (
			employee_name, employee_email, job_title, department,
			termination_date, termination_reason, initiated_by,
			status, equipment_disposition, checklist,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7,
			$8, $9, $10,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		t.EmployeeName, t.EmployeeEmail, t.JobTitle, t.Department,
		t.TerminationDate, t.TerminationReason, t.InitiatedBy,
		t.Status, t.EquipmentDisposition, t.Checklist,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)

	if err != nil {
		return termination.Termination{}, err
	}

	return t, nil
}

func (r *terminationRepositoryImpl) GetByID(ctx context.Context, id int64) (termination.Termination, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + terminationColumns + `
		FROM terminations t
		LEFT JOIN users u ON t.completed_by_user_id = u.id
		WHERE t.id = $1
	`

	return scanTermination(q.QueryRow(ctx, query, id))
}

func (r *terminationRepositoryImpl) Update(ctx context.Context, id int64, fields termination.UpdateFields) error {
	if fields.IsEmpty() {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	// Build SET clause from the supplied fields only
	setClauses := []string{}
	args := []interface{}{}
	argIndex := 1

	addSet := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if fields.EmployeeName != nil {
		addSet("employee_name", *fields.EmployeeName)
	}
	if fields.EmployeeEmail != nil {
		addSet("employee_email", *fields.EmployeeEmail)
	}
	if fields.JobTitle != nil {
		addSet("job_title", *fields.JobTitle)
	}
	if fields.Department != nil {
		addSet("department", *fields.Department)
	}
	if fields.TerminationDate != nil {
		addSet("termination_date", *fields.TerminationDate)
	}
	if fields.TerminationReason != nil {
		addSet("termination_reason", *fields.TerminationReason)
	}
	if fields.InitiatedBy != nil {
		addSet("initiated_by", *fields.InitiatedBy)
	}
	if fields.Status != nil {
		addSet("status", string(*fields.Status))
	}
	if fields.TrackingNumber != nil {
		addSet("tracking_number", *fields.TrackingNumber)
	}
	if fields.EquipmentDisposition != nil {
		addSet("equipment_disposition", string(*fields.EquipmentDisposition))
	}
	if fields.CompletedByUserID != nil {
		addSet("completed_by_user_id", *fields.CompletedByUserID)
	}
	if fields.Checklist != nil {
		addSet("checklist", *fields.Checklist)
	}
	if fields.IsOverdue != nil {
		addSet("is_overdue", *fields.IsOverdue)
	}

	setClauses = append(setClauses, "updated_at = NOW()")

	query := "UPDATE terminations SET "
	for i, clause := range setClauses {
		if i > 0 {
			query += ", "
		}
		query += clause
	}
	query += fmt.Sprintf(" WHERE id = $%d", argIndex)
	args = append(args, id)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return termination.ErrTerminationNotFound
	}
	return nil
}

func (r *terminationRepositoryImpl) UpdateChecklist(ctx context.Context, id int64, checklist termination.Checklist) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE terminations
		SET checklist = $2, updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query, id, checklist)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return termination.ErrTerminationNotFound
	}
	return nil
}

func (r *terminationRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM terminations
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return termination.ErrTerminationNotFound
	}
	return nil
}

func (r *terminationRepositoryImpl) List(ctx context.Context, filter termination.ListFilter, now time.Time) ([]termination.Termination, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + terminationColumns + `
		FROM terminations t
		LEFT JOIN users u ON t.completed_by_user_id = u.id
	`
	args := []interface{}{}

	switch filter {
	case termination.FilterArchived:
		query += " WHERE t.status = 'archived'"
	case termination.FilterOverdue:
		// Includes pending records past the cutoff that the sweep has not
		// reached yet, so the view stays time-accurate between runs.
		cutoff := now.AddDate(0, 0, -termination.OverdueThresholdDays)
		query += " WHERE t.status = 'overdue' OR (t.status = 'pending' AND t.termination_date <= $1)"
		args = append(args, cutoff)
	default:
		query += " WHERE t.status != 'archived'"
	}

	query += " ORDER BY t.termination_date DESC, t.id DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var terminations []termination.Termination
	for rows.Next() {
		t, err := scanTermination(rows)
		if err != nil {
			return nil, err
		}
		terminations = append(terminations, t)
	}

	return terminations, rows.Err()
}

func (r *terminationRepositoryImpl) ListOverdueCandidates(ctx context.Context, cutoff time.Time) ([]termination.Termination, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + terminationColumns + `
		FROM terminations t
		LEFT JOIN users u ON t.completed_by_user_id = u.id
		WHERE t.status = 'pending' AND t.termination_date <= $1
		ORDER BY t.termination_date ASC
	`

	rows, err := q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []termination.Termination
	for rows.Next() {
		t, err := scanTermination(rows)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, t)
	}

	return candidates, rows.Err()
}

func (r *terminationRepositoryImpl) PromoteToOverdue(ctx context.Context, id int64) (bool, error) {
	q := GetQuerier(ctx, r.db)

	// Conditional on status so concurrent sweeps cannot double-promote.
	query := `
		UPDATE terminations
		SET status = 'overdue', is_overdue = TRUE, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return commandTag.RowsAffected() == 1, nil
}
