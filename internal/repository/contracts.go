package repository

import (
	"github.com/rotaplan/roster-backend/internal/domain"
)

func (r *Repository) GetAllContracts(tenantID int64) ([]*domain.Contract, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT id, name, max_minutes_per_day, max_minutes_per_week, max_minutes_per_month, max_minutes_per_year,
		       created_at, version
		FROM contracts WHERE tenant_id = $1 ORDER BY id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contracts := make([]*domain.Contract, 0)
	for rows.Next() {
		contract := &domain.Contract{TenantID: tenantID}
		dst := []any{
			&contract.ID, &contract.Name, &contract.MaximumMinutesPerDay, &contract.MaximumMinutesPerWeek,
			&contract.MaximumMinutesPerMonth, &contract.MaximumMinutesPerYear, &contract.CreatedAt, &contract.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		contracts = append(contracts, contract)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return contracts, nil
}

func (r *Repository) GetContractByID(id int64) (*domain.Contract, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT tenant_id, name, max_minutes_per_day, max_minutes_per_week, max_minutes_per_month, max_minutes_per_year,
		       created_at, version
		FROM contracts WHERE id = $1
	`

	contract := &domain.Contract{ID: id}
	dst := []any{
		&contract.TenantID, &contract.Name, &contract.MaximumMinutesPerDay, &contract.MaximumMinutesPerWeek,
		&contract.MaximumMinutesPerMonth, &contract.MaximumMinutesPerYear, &contract.CreatedAt, &contract.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return contract, nil
}

func (r *Repository) CreateContract(contract *domain.Contract) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		INSERT INTO contracts (tenant_id, name, max_minutes_per_day, max_minutes_per_week, max_minutes_per_month, max_minutes_per_year)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, version
	`

	args := []any{
		contract.TenantID, contract.Name, contract.MaximumMinutesPerDay, contract.MaximumMinutesPerWeek,
		contract.MaximumMinutesPerMonth, contract.MaximumMinutesPerYear,
	}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&contract.ID, &contract.CreatedAt, &contract.Version)
}

func (r *Repository) UpdateContract(contract *domain.Contract) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		UPDATE contracts
		SET
			name = $1,
			max_minutes_per_day = $2,
			max_minutes_per_week = $3,
			max_minutes_per_month = $4,
			max_minutes_per_year = $5,
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING version
	`

	args := []any{
		contract.Name, contract.MaximumMinutesPerDay, contract.MaximumMinutesPerWeek,
		contract.MaximumMinutesPerMonth, contract.MaximumMinutesPerYear, contract.ID, contract.Version,
	}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&contract.Version)
}

func (r *Repository) DeleteContract(id int64) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		DELETE FROM contracts WHERE id = $1
	`

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}
