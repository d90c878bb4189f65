package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"

	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/models"
)

// userRepository is the SQL implementation of [UserRepository] for both
// PostgreSQL and SQLite. Dialect differences live in DB.builder.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser inserts user and returns the row as stored.
//
// Error handling:
//   - unique violation on email / username → [ErrEmailAlreadyExists] /
//     [ErrUsernameAlreadyExists].
//   - any other driver-level error → wrapped [ErrExecutingQuery].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertUserQuery(r.db.builder, user)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if conflict := uniqueViolation(err); conflict != nil {
			return models.User{}, conflict
		}
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return created, nil
}

func (r *userRepository) FindUserByID(ctx context.Context, id string) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByID", sq.Eq{"id": id})
}

func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByEmail", sq.Eq{"email": email})
}

func (r *userRepository) findUser(ctx context.Context, funcName string, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectUserQuery(r.db.builder, where)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, sql.ErrNoRows), isMalformedID(err):
		return models.User{}, ErrUserNotFound
	default:
		log.Err(err).Str("func", funcName).Msg("error selecting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
}

func (r *userRepository) EmailExists(ctx context.Context, email, excludeID string) (bool, error) {
	return r.exists(ctx, "email", email, excludeID)
}

func (r *userRepository) UsernameExists(ctx context.Context, username, excludeID string) (bool, error) {
	return r.exists(ctx, "username", username, excludeID)
}

func (r *userRepository) exists(ctx context.Context, column, value, excludeID string) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUserExistsQuery(r.db.builder, column, value, excludeID)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var marker int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&marker)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	default:
		log.Err(err).Str("func", "*userRepository.exists").Str("column", column).Msg("error checking uniqueness")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
}

// UpdateUser applies the supplied fields of patch. An empty patch returns
// the current record unchanged.
func (r *userRepository) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (models.User, error) {
	if patch.IsEmpty() {
		return r.FindUserByID(ctx, id)
	}

	log := logger.FromContext(ctx)

	query, args, err := buildUpdateUserQuery(r.db.builder, id, patch)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	switch {
	case err == nil:
		return updated, nil
	case errors.Is(err, sql.ErrNoRows), isMalformedID(err):
		return models.User{}, ErrUserNotFound
	}

	if conflict := uniqueViolation(err); conflict != nil {
		return models.User{}, conflict
	}
	log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error updating user")
	return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
}

func (r *userRepository) DeleteUser(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteUserQuery(r.db.builder, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isMalformedID(err) {
			return ErrUserNotFound
		}
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error deleting user")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// isMalformedID reports a PostgreSQL rejection of a non-UUID id literal.
// Such an id cannot match any row.
func isMalformedID(err error) bool {
	pgErr := postgresError(err)
	return pgErr != nil && pgErr.Code == pgerrcode.InvalidTextRepresentation
}
