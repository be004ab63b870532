package repository

import (
	"github.com/rotaplan/roster-backend/internal/domain"
)

func (r *Repository) GetAllShiftTemplates(tenantID int64) ([]*domain.ShiftTemplate, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT id, spot_id, start_day_offset, end_day_offset, start_time, end_time, rotation_employee_id,
		       created_at, version
		FROM shift_templates WHERE tenant_id = $1 ORDER BY id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := make([]*domain.ShiftTemplate, 0)
	for rows.Next() {
		tpl := &domain.ShiftTemplate{TenantID: tenantID}
		dst := []any{
			&tpl.ID, &tpl.SpotID, &tpl.StartDayOffset, &tpl.EndDayOffset, &tpl.StartTime, &tpl.EndTime,
			&tpl.RotationEmployeeID, &tpl.CreatedAt, &tpl.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		templates = append(templates, tpl)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return templates, nil
}

func (r *Repository) GetShiftTemplateByID(id int64) (*domain.ShiftTemplate, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT tenant_id, spot_id, start_day_offset, end_day_offset, start_time, end_time, rotation_employee_id,
		       created_at, version
		FROM shift_templates WHERE id = $1
	`

	tpl := &domain.ShiftTemplate{ID: id}
	dst := []any{
		&tpl.TenantID, &tpl.SpotID, &tpl.StartDayOffset, &tpl.EndDayOffset, &tpl.StartTime, &tpl.EndTime,
		&tpl.RotationEmployeeID, &tpl.CreatedAt, &tpl.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return tpl, nil
}

func (r *Repository) CreateShiftTemplate(tpl *domain.ShiftTemplate) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		INSERT INTO shift_templates (tenant_id, spot_id, start_day_offset, end_day_offset, start_time, end_time, rotation_employee_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version
	`

	args := []any{
		tpl.TenantID, tpl.SpotID, tpl.StartDayOffset, tpl.EndDayOffset,
		tpl.StartTime, tpl.EndTime, tpl.RotationEmployeeID,
	}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&tpl.ID, &tpl.CreatedAt, &tpl.Version)
}

func (r *Repository) UpdateShiftTemplate(tpl *domain.ShiftTemplate) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		UPDATE shift_templates
		SET
			spot_id = $1,
			start_day_offset = $2,
			end_day_offset = $3,
			start_time = $4,
			end_time = $5,
			rotation_employee_id = $6,
			version = version + 1
		WHERE id = $7 AND version = $8
		RETURNING version
	`

	args := []any{
		tpl.SpotID, tpl.StartDayOffset, tpl.EndDayOffset, tpl.StartTime, tpl.EndTime,
		tpl.RotationEmployeeID, tpl.ID, tpl.Version,
	}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&tpl.Version)
}

func (r *Repository) DeleteShiftTemplate(id int64) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		DELETE FROM shift_templates WHERE id = $1
	`

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}
