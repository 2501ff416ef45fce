package repositories

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/mattn/go-sqlite3"

	"interviewsim/internal/errors"
	"interviewsim/internal/models"
	"interviewsim/internal/sqlite"
)

var (
	ErrDuplicateEmail = errors.NewSentinel("email already registered")
	ErrUserNotFound   = errors.NewSentinel("user not found")
)

type UserRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func NewUserRepository(db *sqlite.Database, logger *slog.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger.With("source", "UserRepository"),
	}
}

// Create inserts a new user and returns its id. The email must be unique.
func (r *UserRepository) Create(ctx context.Context, name, email, passwordHash string) (int64, error) {
	stmt := `INSERT INTO users (name, email, password_hash) VALUES (?, ?, ?)`
	res, err := r.db.ReadWrite.ExecContext(ctx, stmt, name, email, passwordHash)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && errors.Is(sqliteErr.ExtendedCode, sqlite3.ErrConstraintUnique) {
			return 0, ErrDuplicateEmail
		}
		return 0, errors.Wrap(err, "insert user")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "last insert id")
	}
	return id, nil
}

// GetByEmail fetches a user for credential verification.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	stmt := `SELECT id, name, email, password_hash, created_at FROM users WHERE email = ?`
	if err := r.db.ReadOnly.GetContext(ctx, &user, stmt, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, "read user by email")
	}
	return &user, nil
}

// Get fetches a user by id.
func (r *UserRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	stmt := `SELECT id, name, email, password_hash, created_at FROM users WHERE id = ?`
	if err := r.db.ReadOnly.GetContext(ctx, &user, stmt, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, "read user")
	}
	return &user, nil
}

// Exists reports whether a user with the given id is registered.
func (r *UserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	stmt := `SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)`
	if err := r.db.ReadOnly.GetContext(ctx, &exists, stmt, id); err != nil {
		return false, errors.Wrap(err, "check user exists")
	}
	return exists, nil
}
