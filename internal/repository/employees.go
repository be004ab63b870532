package repository

import (
	"github.com/rotaplan/roster-backend/internal/domain"
	"github.com/rotaplan/roster-backend/internal/roster"
)

func (r *Repository) GetAllEmployees(tenantID int64) ([]*domain.Employee, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT id, name, contract_id, created_at, version FROM employees WHERE tenant_id = $1 ORDER BY id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		employee := &domain.Employee{TenantID: tenantID, SkillIDs: []int64{}}
		if err := rows.Scan(&employee.ID, &employee.Name, &employee.ContractID, &employee.CreatedAt, &employee.Version); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachEmployeeSkills(employees); err != nil {
		return nil, err
	}

	return employees, nil
}

func (r *Repository) GetEmployeePage(tenantID int64, pagination roster.Pagination) ([]*domain.Employee, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT id, name, contract_id, created_at, version FROM employees
		WHERE tenant_id = $1
		ORDER BY id
		OFFSET $2 LIMIT $3
	`

	rows, err := r.dbpool.QueryContext(ctx, query, tenantID, pagination.Offset(), pagination.Limit())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		employee := &domain.Employee{TenantID: tenantID, SkillIDs: []int64{}}
		if err := rows.Scan(&employee.ID, &employee.Name, &employee.ContractID, &employee.CreatedAt, &employee.Version); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachEmployeeSkills(employees); err != nil {
		return nil, err
	}

	return employees, nil
}

func (r *Repository) attachEmployeeSkills(employees []*domain.Employee) error {
	if len(employees) == 0 {
		return nil
	}

	ctx, cancel := r.queryContext()
	defer cancel()

	employeeIDs := make([]int64, 0, len(employees))
	byEmployeeID := make(map[int64]*domain.Employee, len(employees))
	for _, employee := range employees {
		employeeIDs = append(employeeIDs, employee.ID)
		byEmployeeID[employee.ID] = employee
	}

	query := `
		SELECT employee_id, skill_id FROM employee_skills WHERE employee_id = ANY($1) ORDER BY skill_id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, employeeIDs)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var employeeID, skillID int64
		if err := rows.Scan(&employeeID, &skillID); err != nil {
			return err
		}
		employee := byEmployeeID[employeeID]
		employee.SkillIDs = append(employee.SkillIDs, skillID)
	}

	return rows.Err()
}

func (r *Repository) GetEmployeeByID(id int64) (*domain.Employee, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT tenant_id, name, contract_id, created_at, version FROM employees WHERE id = $1
	`

	employee := &domain.Employee{ID: id, SkillIDs: []int64{}}
	dst := []any{&employee.TenantID, &employee.Name, &employee.ContractID, &employee.CreatedAt, &employee.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	if err := r.attachEmployeeSkills([]*domain.Employee{employee}); err != nil {
		return nil, err
	}

	return employee, nil
}

func (r *Repository) CreateEmployee(employee *domain.Employee) error {
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
		INSERT INTO employees (tenant_id, name, contract_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	if err := tx.QueryRowContext(ctx, query, employee.TenantID, employee.Name, employee.ContractID).Scan(&employee.ID, &employee.CreatedAt, &employee.Version); err != nil {
		return err
	}

	for _, skillID := range employee.SkillIDs {
		query = `INSERT INTO employee_skills (employee_id, skill_id) VALUES ($1, $2)`
		if _, err := tx.ExecContext(ctx, query, employee.ID, skillID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) UpdateEmployee(employee *domain.Employee) error {
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
		UPDATE employees
		SET
			name = $1,
			contract_id = $2,
			version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING version
	`

	if err := tx.QueryRowContext(ctx, query, employee.Name, employee.ContractID, employee.ID, employee.Version).Scan(&employee.Version); err != nil {
		return err
	}

	query = `DELETE FROM employee_skills WHERE employee_id = $1`
	if _, err := tx.ExecContext(ctx, query, employee.ID); err != nil {
		return err
	}

	for _, skillID := range employee.SkillIDs {
		query = `INSERT INTO employee_skills (employee_id, skill_id) VALUES ($1, $2)`
		if _, err := tx.ExecContext(ctx, query, employee.ID, skillID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) DeleteEmployee(id int64) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		DELETE FROM employees WHERE id = $1
	`

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}
