package repository

import (
	"github.com/rotaplan/roster-backend/internal/domain"
)

func (r *Repository) GetAllAvailabilities(tenantID int64) ([]*domain.EmployeeAvailability, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT id, employee_id, date, start_time, end_time, state, created_at, version
		FROM employee_availabilities WHERE tenant_id = $1 ORDER BY id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	availabilities := make([]*domain.EmployeeAvailability, 0)
	for rows.Next() {
		availability := &domain.EmployeeAvailability{TenantID: tenantID}
		dst := []any{
			&availability.ID, &availability.EmployeeID, &availability.Date, &availability.StartTime,
			&availability.EndTime, &availability.State, &availability.CreatedAt, &availability.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		availabilities = append(availabilities, availability)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return availabilities, nil
}

func (r *Repository) GetAvailabilitiesForEmployees(tenantID int64, employeeIDs []int64, from, to domain.LocalDate) ([]*domain.EmployeeAvailability, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT id, employee_id, date, start_time, end_time, state, created_at, version
		FROM employee_availabilities
		WHERE tenant_id = $1 AND employee_id = ANY($2) AND date >= $3 AND date < $4
		ORDER BY employee_id, date, id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, tenantID, employeeIDs, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	availabilities := make([]*domain.EmployeeAvailability, 0)
	for rows.Next() {
		availability := &domain.EmployeeAvailability{TenantID: tenantID}
		dst := []any{
			&availability.ID, &availability.EmployeeID, &availability.Date, &availability.StartTime,
			&availability.EndTime, &availability.State, &availability.CreatedAt, &availability.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		availabilities = append(availabilities, availability)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return availabilities, nil
}

func (r *Repository) GetAvailabilityByID(id int64) (*domain.EmployeeAvailability, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT tenant_id, employee_id, date, start_time, end_time, state, created_at, version
		FROM employee_availabilities WHERE id = $1
	`

	availability := &domain.EmployeeAvailability{ID: id}
	dst := []any{
		&availability.TenantID, &availability.EmployeeID, &availability.Date, &availability.StartTime,
		&availability.EndTime, &availability.State, &availability.CreatedAt, &availability.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return availability, nil
}

func (r *Repository) CreateAvailability(availability *domain.EmployeeAvailability) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		INSERT INTO employee_availabilities (tenant_id, employee_id, date, start_time, end_time, state)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, version
	`

	args := []any{
		availability.TenantID, availability.EmployeeID, availability.Date,
		availability.StartTime, availability.EndTime, availability.State,
	}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&availability.ID, &availability.CreatedAt, &availability.Version)
}

func (r *Repository) UpdateAvailability(availability *domain.EmployeeAvailability) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		UPDATE employee_availabilities
		SET
			employee_id = $1,
			date = $2,
			start_time = $3,
			end_time = $4,
			state = $5,
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING version
	`

	args := []any{
		availability.EmployeeID, availability.Date, availability.StartTime, availability.EndTime,
		availability.State, availability.ID, availability.Version,
	}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&availability.Version)
}

func (r *Repository) DeleteAvailability(id int64) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		DELETE FROM employee_availabilities WHERE id = $1
	`

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}
