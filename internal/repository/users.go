package repository

import (
	"github.com/rotaplan/roster-backend/internal/domain"
)

const userColumns = `id, username, password_hash, full_name, email, role, is_active, created_at, version`

func scanUser(scan func(dst ...any) error) (*domain.User, error) {
	user := &domain.User{}
	dst := []any{
		&user.ID, &user.Username, &user.PasswordHash, &user.FullName, &user.Email,
		&user.Role, &user.IsActive, &user.CreatedAt, &user.Version,
	}
	if err := scan(dst...); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *Repository) GetAllUsers() ([]*domain.User, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT ` + userColumns + ` FROM users ORDER BY id
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows.Scan)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *Repository) GetUserByID(id int64) (*domain.User, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT ` + userColumns + ` FROM users WHERE id = $1
	`

	return scanUser(r.dbpool.QueryRowContext(ctx, query, id).Scan)
}

func (r *Repository) GetUserByUsername(username string) (*domain.User, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT ` + userColumns + ` FROM users WHERE username = $1
	`

	return scanUser(r.dbpool.QueryRowContext(ctx, query, username).Scan)
}

func (r *Repository) GetUserByEmail(email string) (*domain.User, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT ` + userColumns + ` FROM users WHERE email = $1
	`

	return scanUser(r.dbpool.QueryRowContext(ctx, query, email).Scan)
}

func (r *Repository) CreateUser(user *domain.User) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		INSERT INTO users (username, password_hash, full_name, email, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, version
	`

	args := []any{user.Username, user.PasswordHash, user.FullName, user.Email, user.Role, user.IsActive}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.CreatedAt, &user.Version)
}

func (r *Repository) UpdateUser(user *domain.User) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		UPDATE users
		SET
			password_hash = $1,
			full_name = $2,
			email = $3,
			role = $4,
			is_active = $5,
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING version
	`

	args := []any{user.PasswordHash, user.FullName, user.Email, user.Role, user.IsActive, user.ID, user.Version}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&user.Version)
}

func (r *Repository) DeleteUser(id int64) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		DELETE FROM users WHERE id = $1
	`

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}

func (r *Repository) CountUsers() (int, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT COUNT(*) FROM users
	`

	var count int
	if err := r.dbpool.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
