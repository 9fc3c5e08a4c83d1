package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/haguru/sakura/internal/interfaces"
	"github.com/haguru/sakura/internal/models"
	"github.com/haguru/sakura/internal/userrepo"
)

// The position column keeps insertion order. id is not a key: the collection
// is replaced as a whole and the store does not enforce uniqueness.
// created_at is RFC 3339 text so both drivers round-trip it unchanged.
const (
	createTableStmt = `CREATE TABLE IF NOT EXISTS users (
	position      INTEGER NOT NULL,
	id            TEXT NOT NULL,
	username      TEXT NOT NULL,
	email         TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	created_at    TEXT NOT NULL
)`
	selectUsersStmt = `SELECT id, username, email, password_hash, created_at FROM users ORDER BY position`
	deleteUsersStmt = `DELETE FROM users`
	insertUserStmt  = `INSERT INTO users (position, id, username, email, password_hash, created_at) VALUES ($1, $2, $3, $4, $5, $6)`
)

// SQLUserRepository implements UserRepository over database/sql. The same
// statements run on PostgreSQL (lib/pq) and SQLite (modernc.org/sqlite).
type SQLUserRepository struct {
	db     *sql.DB
	logger interfaces.Logger
}

func NewSQLUserRepository(db *sql.DB, logger interfaces.Logger) (interfaces.UserRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	return &SQLUserRepository{db: db, logger: logger}, nil
}

// Init creates the users table if needed. An empty table is an empty collection.
func (r *SQLUserRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTableStmt); err != nil {
		return fmt.Errorf("%s: %w", userrepo.ErrInitStore, err)
	}
	return nil
}

func (r *SQLUserRepository) Load(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, selectUsersStmt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", userrepo.ErrLoadUsers, err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			r.logger.Warn("failed to close rows", "error", cerr)
		}
	}()

	users := []models.User{}
	for rows.Next() {
		var (
			u         models.User
			createdAt string
		)
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &createdAt); err != nil {
			return nil, fmt.Errorf("%s: %w", userrepo.ErrLoadUsers, err)
		}
		u.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", userrepo.ErrDecodeUsers, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", userrepo.ErrLoadUsers, err)
	}
	return users, nil
}

// Save replaces every row inside one transaction.
func (r *SQLUserRepository) Save(ctx context.Context, users []models.User) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", userrepo.ErrSaveUsers, err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				r.logger.Error("failed to roll back users save", "error", rbErr)
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, deleteUsersStmt); err != nil {
		return fmt.Errorf("%s: %w", userrepo.ErrSaveUsers, err)
	}

	if len(users) > 0 {
		stmt, prepErr := tx.PrepareContext(ctx, insertUserStmt)
		if prepErr != nil {
			err = prepErr
			return fmt.Errorf("%s: %w", userrepo.ErrSaveUsers, err)
		}
		defer stmt.Close()

		for i, u := range users {
			if _, err = stmt.ExecContext(ctx, i, u.ID, u.Username, u.Email, u.PasswordHash, u.CreatedAt.UTC().Format(time.RFC3339Nano)); err != nil {
				return fmt.Errorf("%s: %w", userrepo.ErrSaveUsers, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", userrepo.ErrSaveUsers, err)
	}
	return nil
}

// Close is a no-op; the pool is owned by the caller.
func (r *SQLUserRepository) Close(ctx context.Context) error {
	return nil
}
