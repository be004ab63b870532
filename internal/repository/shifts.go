package repository

import (
	"time"

	"github.com/rotaplan/roster-backend/internal/domain"
)

const shiftColumns = `id, spot_id, start_date_time, end_date_time, employee_id, rotation_employee_id, pinned_by_user, created_at, version`

func scanShift(tenantID int64, scan func(dst ...any) error) (*domain.Shift, error) {
	shift := &domain.Shift{TenantID: tenantID}
	dst := []any{
		&shift.ID, &shift.SpotID, &shift.StartDateTime, &shift.EndDateTime, &shift.EmployeeID,
		&shift.RotationEmployeeID, &shift.PinnedByUser, &shift.CreatedAt, &shift.Version,
	}
	if err := scan(dst...); err != nil {
		return nil, err
	}
	return shift, nil
}

func (r *Repository) collectShifts(tenantID int64, query string, args ...any) ([]*domain.Shift, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		shift, err := scanShift(tenantID, rows.Scan)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

func (r *Repository) GetAllShifts(tenantID int64) ([]*domain.Shift, error) {
	query := `
		SELECT ` + shiftColumns + ` FROM shifts WHERE tenant_id = $1 ORDER BY start_date_time, id
	`
	return r.collectShifts(tenantID, query, tenantID)
}

// The range queries below return every shift intersecting [start, end),
// including shifts that start before the window but end inside it.
func (r *Repository) GetShiftsForSpots(tenantID int64, spotIDs []int64, start, end time.Time) ([]*domain.Shift, error) {
	query := `
		SELECT ` + shiftColumns + ` FROM shifts
		WHERE tenant_id = $1 AND spot_id = ANY($2) AND end_date_time > $3 AND start_date_time < $4
		ORDER BY start_date_time, id
	`
	return r.collectShifts(tenantID, query, tenantID, spotIDs, start, end)
}

func (r *Repository) GetShiftsForEmployees(tenantID int64, employeeIDs []int64, start, end time.Time) ([]*domain.Shift, error) {
	query := `
		SELECT ` + shiftColumns + ` FROM shifts
		WHERE tenant_id = $1 AND employee_id = ANY($2) AND end_date_time > $3 AND start_date_time < $4
		ORDER BY start_date_time, id
	`
	return r.collectShifts(tenantID, query, tenantID, employeeIDs, start, end)
}

func (r *Repository) GetUnassignedShifts(tenantID int64, start, end time.Time) ([]*domain.Shift, error) {
	query := `
		SELECT ` + shiftColumns + ` FROM shifts
		WHERE tenant_id = $1 AND employee_id IS NULL AND end_date_time > $2 AND start_date_time < $3
		ORDER BY start_date_time, id
	`
	return r.collectShifts(tenantID, query, tenantID, start, end)
}

func (r *Repository) GetShiftByID(id int64) (*domain.Shift, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT tenant_id, spot_id, start_date_time, end_date_time, employee_id, rotation_employee_id,
		       pinned_by_user, created_at, version
		FROM shifts WHERE id = $1
	`

	shift := &domain.Shift{ID: id}
	dst := []any{
		&shift.TenantID, &shift.SpotID, &shift.StartDateTime, &shift.EndDateTime, &shift.EmployeeID,
		&shift.RotationEmployeeID, &shift.PinnedByUser, &shift.CreatedAt, &shift.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return shift, nil
}

func (r *Repository) CreateShift(shift *domain.Shift) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		INSERT INTO shifts (tenant_id, spot_id, start_date_time, end_date_time, employee_id, rotation_employee_id, pinned_by_user)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version
	`

	args := []any{
		shift.TenantID, shift.SpotID, shift.StartDateTime, shift.EndDateTime,
		shift.EmployeeID, shift.RotationEmployeeID, shift.PinnedByUser,
	}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.ID, &shift.CreatedAt, &shift.Version)
}

// CreateShifts inserts a stamped batch in one transaction. Used by
// publish-and-provision so the provisioned window is all or nothing.
func (r *Repository) CreateShifts(shifts []*domain.Shift) error {
	if len(shifts) == 0 {
		return nil
	}

	ctx, cancel := r.txContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO shifts (tenant_id, spot_id, start_date_time, end_date_time, employee_id, rotation_employee_id, pinned_by_user)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version
	`

	for _, shift := range shifts {
		args := []any{
			shift.TenantID, shift.SpotID, shift.StartDateTime, shift.EndDateTime,
			shift.EmployeeID, shift.RotationEmployeeID, shift.PinnedByUser,
		}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&shift.ID, &shift.CreatedAt, &shift.Version); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) UpdateShift(shift *domain.Shift) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		UPDATE shifts
		SET
			spot_id = $1,
			start_date_time = $2,
			end_date_time = $3,
			employee_id = $4,
			rotation_employee_id = $5,
			pinned_by_user = $6,
			version = version + 1
		WHERE id = $7 AND version = $8
		RETURNING version
	`

	args := []any{
		shift.SpotID, shift.StartDateTime, shift.EndDateTime, shift.EmployeeID,
		shift.RotationEmployeeID, shift.PinnedByUser, shift.ID, shift.Version,
	}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.Version)
}

func (r *Repository) DeleteShift(id int64) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		DELETE FROM shifts WHERE id = $1
	`

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}

// SaveShiftAssignments writes the solver's employee assignments back in
// one transaction, skipping shifts a user pinned after the solve began.
func (r *Repository) SaveShiftAssignments(tenantID int64, shifts []*domain.Shift) error {
	ctx, cancel := r.txContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE shifts
		SET
			employee_id = $1,
			version = version + 1
		WHERE id = $2 AND tenant_id = $3 AND NOT pinned_by_user
	`

	for _, shift := range shifts {
		if shift.PinnedByUser {
			continue
		}
		if _, err := tx.ExecContext(ctx, query, shift.EmployeeID, shift.ID, tenantID); err != nil {
			return err
		}
	}

	return tx.Commit()
}
