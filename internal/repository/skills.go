package repository

import (
	"github.com/rotaplan/roster-backend/internal/domain"
)

func (r *Repository) GetAllSkills(tenantID int64) ([]*domain.Skill, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT id, name, created_at, version FROM skills WHERE tenant_id = $1 ORDER BY id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	skills := make([]*domain.Skill, 0)
	for rows.Next() {
		skill := &domain.Skill{TenantID: tenantID}
		if err := rows.Scan(&skill.ID, &skill.Name, &skill.CreatedAt, &skill.Version); err != nil {
			return nil, err
		}
		skills = append(skills, skill)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return skills, nil
}

func (r *Repository) GetSkillByID(id int64) (*domain.Skill, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT tenant_id, name, created_at, version FROM skills WHERE id = $1
	`

	skill := &domain.Skill{ID: id}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&skill.TenantID, &skill.Name, &skill.CreatedAt, &skill.Version); err != nil {
		return nil, err
	}

	return skill, nil
}

func (r *Repository) CreateSkill(skill *domain.Skill) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		INSERT INTO skills (tenant_id, name)
		VALUES ($1, $2)
		RETURNING id, created_at, version
	`

	return r.dbpool.QueryRowContext(ctx, query, skill.TenantID, skill.Name).Scan(&skill.ID, &skill.CreatedAt, &skill.Version)
}

func (r *Repository) UpdateSkill(skill *domain.Skill) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		UPDATE skills
		SET
			name = $1,
			version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	return r.dbpool.QueryRowContext(ctx, query, skill.Name, skill.ID, skill.Version).Scan(&skill.Version)
}

func (r *Repository) DeleteSkill(id int64) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		DELETE FROM skills WHERE id = $1
	`

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}
