package repository

import (
	"github.com/rotaplan/roster-backend/internal/domain"
	"github.com/rotaplan/roster-backend/internal/rostergen"
)

func (r *Repository) GetAllTenants() ([]*domain.Tenant, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT id, name, created_at, version FROM tenants ORDER BY id
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tenants := make([]*domain.Tenant, 0)
	for rows.Next() {
		tenant := &domain.Tenant{}
		if err := rows.Scan(&tenant.ID, &tenant.Name, &tenant.CreatedAt, &tenant.Version); err != nil {
			return nil, err
		}
		tenants = append(tenants, tenant)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tenants, nil
}

func (r *Repository) GetTenantByID(id int64) (*domain.Tenant, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT name, created_at, version FROM tenants WHERE id = $1
	`

	tenant := &domain.Tenant{ID: id}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&tenant.Name, &tenant.CreatedAt, &tenant.Version); err != nil {
		return nil, err
	}

	return tenant, nil
}

func (r *Repository) CreateTenant(tenant *domain.Tenant) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		INSERT INTO tenants (name)
		VALUES ($1)
		RETURNING id, created_at, version
	`

	return r.dbpool.QueryRowContext(ctx, query, tenant.Name).Scan(&tenant.ID, &tenant.CreatedAt, &tenant.Version)
}

func (r *Repository) DeleteTenant(id int64) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		DELETE FROM tenants WHERE id = $1
	`

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}

func (r *Repository) GetRosterState(tenantID int64) (*domain.RosterState, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT id, publish_notice, first_draft_date, publish_length, draft_length,
		       unplanned_rotation_offset, rotation_length, last_historic_date, time_zone, version
		FROM roster_states WHERE tenant_id = $1
	`

	state := &domain.RosterState{TenantID: tenantID}
	dst := []any{
		&state.ID, &state.PublishNotice, &state.FirstDraftDate, &state.PublishLength, &state.DraftLength,
		&state.UnplannedRotationOffset, &state.RotationLength, &state.LastHistoricDate, &state.TimeZone, &state.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, tenantID).Scan(dst...); err != nil {
		return nil, err
	}

	return state, nil
}

func (r *Repository) CreateRosterState(state *domain.RosterState) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		INSERT INTO roster_states
			(tenant_id, publish_notice, first_draft_date, publish_length, draft_length,
			 unplanned_rotation_offset, rotation_length, last_historic_date, time_zone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, version
	`

	args := []any{
		state.TenantID, state.PublishNotice, state.FirstDraftDate, state.PublishLength, state.DraftLength,
		state.UnplannedRotationOffset, state.RotationLength, state.LastHistoricDate, state.TimeZone,
	}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&state.ID, &state.Version)
}

func (r *Repository) UpdateRosterState(state *domain.RosterState) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		UPDATE roster_states
		SET
			first_draft_date = $1,
			unplanned_rotation_offset = $2,
			last_historic_date = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`

	args := []any{state.FirstDraftDate, state.UnplannedRotationOffset, state.LastHistoricDate, state.ID, state.Version}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&state.Version)
}

// SaveGeneratedRoster persists a generator batch in one transaction,
// remapping the batch-local IDs to the database-assigned ones in
// dependency order.
func (r *Repository) SaveGeneratedRoster(generated *rostergen.GeneratedRoster) error {
	ctx, cancel := r.txContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var tenantID int64
	query := `INSERT INTO tenants (name) VALUES ($1) RETURNING id`
	if err := tx.QueryRowContext(ctx, query, generated.Tenant.Name).Scan(&tenantID); err != nil {
		return err
	}
	generated.Tenant.ID = tenantID

	skillIDs := make(map[int64]int64, len(generated.Skills))
	for _, skill := range generated.Skills {
		var id int64
		query = `INSERT INTO skills (tenant_id, name) VALUES ($1, $2) RETURNING id`
		if err := tx.QueryRowContext(ctx, query, tenantID, skill.Name).Scan(&id); err != nil {
			return err
		}
		skillIDs[skill.ID] = id
		skill.ID = id
		skill.TenantID = tenantID
	}

	contractIDs := make(map[int64]int64, len(generated.Contracts))
	for _, contract := range generated.Contracts {
		var id int64
		query = `
			INSERT INTO contracts
				(tenant_id, name, max_minutes_per_day, max_minutes_per_week, max_minutes_per_month, max_minutes_per_year)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`
		args := []any{
			tenantID, contract.Name, contract.MaximumMinutesPerDay, contract.MaximumMinutesPerWeek,
			contract.MaximumMinutesPerMonth, contract.MaximumMinutesPerYear,
		}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
			return err
		}
		contractIDs[contract.ID] = id
		contract.ID = id
		contract.TenantID = tenantID
	}

	spotIDs := make(map[int64]int64, len(generated.Spots))
	for _, spot := range generated.Spots {
		var id int64
		query = `INSERT INTO spots (tenant_id, name) VALUES ($1, $2) RETURNING id`
		if err := tx.QueryRowContext(ctx, query, tenantID, spot.Name).Scan(&id); err != nil {
			return err
		}
		for i, skillID := range spot.RequiredSkillIDs {
			spot.RequiredSkillIDs[i] = skillIDs[skillID]
			query = `INSERT INTO spot_required_skills (spot_id, skill_id) VALUES ($1, $2)`
			if _, err := tx.ExecContext(ctx, query, id, spot.RequiredSkillIDs[i]); err != nil {
				return err
			}
		}
		spotIDs[spot.ID] = id
		spot.ID = id
		spot.TenantID = tenantID
	}

	employeeIDs := make(map[int64]int64, len(generated.Employees))
	for _, employee := range generated.Employees {
		var id int64
		query = `INSERT INTO employees (tenant_id, name, contract_id) VALUES ($1, $2, $3) RETURNING id`
		if err := tx.QueryRowContext(ctx, query, tenantID, employee.Name, contractIDs[employee.ContractID]).Scan(&id); err != nil {
			return err
		}
		employee.ContractID = contractIDs[employee.ContractID]
		for i, skillID := range employee.SkillIDs {
			employee.SkillIDs[i] = skillIDs[skillID]
			query = `INSERT INTO employee_skills (employee_id, skill_id) VALUES ($1, $2)`
			if _, err := tx.ExecContext(ctx, query, id, employee.SkillIDs[i]); err != nil {
				return err
			}
		}
		employeeIDs[employee.ID] = id
		employee.ID = id
		employee.TenantID = tenantID
	}

	for _, tpl := range generated.ShiftTemplates {
		var rotationEmployeeID *int64
		if tpl.RotationEmployeeID != nil {
			mapped := employeeIDs[*tpl.RotationEmployeeID]
			rotationEmployeeID = &mapped
		}
		query = `
			INSERT INTO shift_templates
				(tenant_id, spot_id, start_day_offset, end_day_offset, start_time, end_time, rotation_employee_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`
		args := []any{
			tenantID, spotIDs[tpl.SpotID], tpl.StartDayOffset, tpl.EndDayOffset,
			tpl.StartTime, tpl.EndTime, rotationEmployeeID,
		}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&tpl.ID); err != nil {
			return err
		}
		tpl.SpotID = spotIDs[tpl.SpotID]
		tpl.RotationEmployeeID = rotationEmployeeID
		tpl.TenantID = tenantID
	}

	for _, shift := range generated.Shifts {
		var employeeID, rotationEmployeeID *int64
		if shift.EmployeeID != nil {
			mapped := employeeIDs[*shift.EmployeeID]
			employeeID = &mapped
		}
		if shift.RotationEmployeeID != nil {
			mapped := employeeIDs[*shift.RotationEmployeeID]
			rotationEmployeeID = &mapped
		}
		query = `
			INSERT INTO shifts
				(tenant_id, spot_id, start_date_time, end_date_time, employee_id, rotation_employee_id, pinned_by_user)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`
		args := []any{
			tenantID, spotIDs[shift.SpotID], shift.StartDateTime, shift.EndDateTime,
			employeeID, rotationEmployeeID, shift.PinnedByUser,
		}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&shift.ID); err != nil {
			return err
		}
		shift.SpotID = spotIDs[shift.SpotID]
		shift.EmployeeID = employeeID
		shift.RotationEmployeeID = rotationEmployeeID
		shift.TenantID = tenantID
	}

	for _, availability := range generated.Availabilities {
		query = `
			INSERT INTO employee_availabilities (tenant_id, employee_id, date, start_time, end_time, state)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`
		args := []any{
			tenantID, employeeIDs[availability.EmployeeID], availability.Date,
			availability.StartTime, availability.EndTime, availability.State,
		}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&availability.ID); err != nil {
			return err
		}
		availability.EmployeeID = employeeIDs[availability.EmployeeID]
		availability.TenantID = tenantID
	}

	state := generated.RosterState
	state.TenantID = tenantID
	query = `
		INSERT INTO roster_states
			(tenant_id, publish_notice, first_draft_date, publish_length, draft_length,
			 unplanned_rotation_offset, rotation_length, last_historic_date, time_zone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, version
	`
	args := []any{
		state.TenantID, state.PublishNotice, state.FirstDraftDate, state.PublishLength, state.DraftLength,
		state.UnplannedRotationOffset, state.RotationLength, state.LastHistoricDate, state.TimeZone,
	}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&state.ID, &state.Version); err != nil {
		return err
	}

	return tx.Commit()
}
