package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/models"
)

// taskRepository is the SQL implementation of [TaskRepository]. Every
// statement filters on user_id, so a caller can never reach another
// user's rows.
type taskRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTaskRepository constructs a [TaskRepository] backed by db.
func NewTaskRepository(db *DB, logger *logger.Logger) TaskRepository {
	logger.Debug().Msg("creating task repository")
	return &taskRepository{
		db:     db,
		logger: logger,
	}
}

func (r *taskRepository) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertTaskQuery(r.db.builder, task)
	if err != nil {
		return models.Task{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanTask(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.CreateTask").Msg("error inserting task")
		return models.Task{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return created, nil
}

func (r *taskRepository) ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectTasksQuery(r.db.builder, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		if isMalformedID(err) {
			return []models.Task{}, nil
		}
		log.Err(err).Str("func", "*taskRepository.ListTasks").Msg("error selecting tasks")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	tasks := make([]models.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Err(err).Str("func", "*taskRepository.ListTasks").Msg("error scanning task")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*taskRepository.ListTasks").Msg("error iterating tasks")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return tasks, nil
}

func (r *taskRepository) GetTask(ctx context.Context, userID, taskID string) (models.Task, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectTaskQuery(r.db.builder, userID, taskID)
	if err != nil {
		return models.Task{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	task, err := scanTask(r.db.QueryRowContext(ctx, query, args...))
	switch {
	case err == nil:
		return task, nil
	case errors.Is(err, sql.ErrNoRows), isMalformedID(err):
		return models.Task{}, ErrTaskNotFound
	default:
		log.Err(err).Str("func", "*taskRepository.GetTask").Msg("error selecting task")
		return models.Task{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
}

// UpdateTask applies the supplied fields in one UPDATE ... RETURNING
// statement. An empty update returns the current record.
func (r *taskRepository) UpdateTask(ctx context.Context, userID, taskID string, update models.TaskUpdate) (models.Task, error) {
	if update.IsEmpty() {
		return r.GetTask(ctx, userID, taskID)
	}

	log := logger.FromContext(ctx)

	query, args, err := buildUpdateTaskQuery(r.db.builder, userID, taskID, update)
	if err != nil {
		return models.Task{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	task, err := scanTask(r.db.QueryRowContext(ctx, query, args...))
	switch {
	case err == nil:
		return task, nil
	case errors.Is(err, sql.ErrNoRows), isMalformedID(err):
		return models.Task{}, ErrTaskNotFound
	default:
		log.Err(err).Str("func", "*taskRepository.UpdateTask").Msg("error updating task")
		return models.Task{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
}

func (r *taskRepository) DeleteTask(ctx context.Context, userID, taskID string) error {
	query, args, err := buildDeleteTaskQuery(r.db.builder, userID, taskID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	affected, err := r.exec(ctx, "*taskRepository.DeleteTask", query, args)
	if err != nil {
		if isMalformedID(err) {
			return ErrTaskNotFound
		}
		return err
	}
	if affected == 0 {
		return ErrTaskNotFound
	}

	return nil
}

func (r *taskRepository) DeleteTasksByUser(ctx context.Context, userID string) (int64, error) {
	query, args, err := buildDeleteTasksByUserQuery(r.db.builder, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	affected, err := r.exec(ctx, "*taskRepository.DeleteTasksByUser", query, args)
	if err != nil && isMalformedID(err) {
		return 0, nil
	}
	return affected, err
}

func (r *taskRepository) exec(ctx context.Context, funcName, query string, args []any) (int64, error) {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if !isMalformedID(err) {
			log.Err(err).Str("func", funcName).Msg("error executing statement")
		}
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return affected, nil
}
