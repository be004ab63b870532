package repository

import (
	"github.com/rotaplan/roster-backend/internal/domain"
	"github.com/rotaplan/roster-backend/internal/roster"
)

func (r *Repository) GetAllSpots(tenantID int64) ([]*domain.Spot, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT id, name, created_at, version FROM spots WHERE tenant_id = $1 ORDER BY id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	spots := make([]*domain.Spot, 0)
	for rows.Next() {
		spot := &domain.Spot{TenantID: tenantID, RequiredSkillIDs: []int64{}}
		if err := rows.Scan(&spot.ID, &spot.Name, &spot.CreatedAt, &spot.Version); err != nil {
			return nil, err
		}
		spots = append(spots, spot)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachRequiredSkills(spots); err != nil {
		return nil, err
	}

	return spots, nil
}

func (r *Repository) GetSpotPage(tenantID int64, pagination roster.Pagination) ([]*domain.Spot, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT id, name, created_at, version FROM spots
		WHERE tenant_id = $1
		ORDER BY id
		OFFSET $2 LIMIT $3
	`

	rows, err := r.dbpool.QueryContext(ctx, query, tenantID, pagination.Offset(), pagination.Limit())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	spots := make([]*domain.Spot, 0)
	for rows.Next() {
		spot := &domain.Spot{TenantID: tenantID, RequiredSkillIDs: []int64{}}
		if err := rows.Scan(&spot.ID, &spot.Name, &spot.CreatedAt, &spot.Version); err != nil {
			return nil, err
		}
		spots = append(spots, spot)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachRequiredSkills(spots); err != nil {
		return nil, err
	}

	return spots, nil
}

func (r *Repository) attachRequiredSkills(spots []*domain.Spot) error {
	if len(spots) == 0 {
		return nil
	}

	ctx, cancel := r.queryContext()
	defer cancel()

	spotIDs := make([]int64, 0, len(spots))
	bySpotID := make(map[int64]*domain.Spot, len(spots))
	for _, spot := range spots {
		spotIDs = append(spotIDs, spot.ID)
		bySpotID[spot.ID] = spot
	}

	query := `
		SELECT spot_id, skill_id FROM spot_required_skills WHERE spot_id = ANY($1) ORDER BY skill_id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, spotIDs)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var spotID, skillID int64
		if err := rows.Scan(&spotID, &skillID); err != nil {
			return err
		}
		spot := bySpotID[spotID]
		spot.RequiredSkillIDs = append(spot.RequiredSkillIDs, skillID)
	}

	return rows.Err()
}

func (r *Repository) GetSpotByID(id int64) (*domain.Spot, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT tenant_id, name, created_at, version FROM spots WHERE id = $1
	`

	spot := &domain.Spot{ID: id, RequiredSkillIDs: []int64{}}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&spot.TenantID, &spot.Name, &spot.CreatedAt, &spot.Version); err != nil {
		return nil, err
	}

	if err := r.attachRequiredSkills([]*domain.Spot{spot}); err != nil {
		return nil, err
	}

	return spot, nil
}

func (r *Repository) CreateSpot(spot *domain.Spot) error {
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
		INSERT INTO spots (tenant_id, name)
		VALUES ($1, $2)
		RETURNING id, created_at, version
	`

	if err := tx.QueryRowContext(ctx, query, spot.TenantID, spot.Name).Scan(&spot.ID, &spot.CreatedAt, &spot.Version); err != nil {
		return err
	}

	for _, skillID := range spot.RequiredSkillIDs {
		query = `INSERT INTO spot_required_skills (spot_id, skill_id) VALUES ($1, $2)`
		if _, err := tx.ExecContext(ctx, query, spot.ID, skillID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) UpdateSpot(spot *domain.Spot) error {
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
		UPDATE spots
		SET
			name = $1,
			version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	if err := tx.QueryRowContext(ctx, query, spot.Name, spot.ID, spot.Version).Scan(&spot.Version); err != nil {
		return err
	}

	query = `DELETE FROM spot_required_skills WHERE spot_id = $1`
	if _, err := tx.ExecContext(ctx, query, spot.ID); err != nil {
		return err
	}

	for _, skillID := range spot.RequiredSkillIDs {
		query = `INSERT INTO spot_required_skills (spot_id, skill_id) VALUES ($1, $2)`
		if _, err := tx.ExecContext(ctx, query, spot.ID, skillID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) DeleteSpot(id int64) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		DELETE FROM spots WHERE id = $1
	`

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}
