package store

import (
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-task-tracker/models"
)

const (
	usersTable = "users"
	tasksTable = "tasks"
)

var (
	userColumns = []string{"id", "username", "email", "password_hash", "full_name", "created_at"}
	taskColumns = []string{"id", "title", "description", "status", "due_date", "created_at", "user_id"}
)

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

// nullable turns a nil pointer into SQL NULL and dereferences otherwise.
func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

// optionalValue is the SET value for a supplied Optional: NULL or the value.
func optionalValue[T any](o models.Optional[T]) any {
	if o.Null {
		return nil
	}
	return o.Value
}

// ── users ─────────────────────────────────────────────────────────────────────

func buildInsertUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert(usersTable).
		Columns(userColumns...).
		Values(user.ID, user.Username, user.Email, user.PasswordHash, nullable(user.FullName), user.CreatedAt).
		Suffix(returning(userColumns)).
		ToSql()
}

func buildSelectUserQuery(b sq.StatementBuilderType, where sq.Eq) (string, []any, error) {
	return b.Select(userColumns...).
		From(usersTable).
		Where(where).
		Limit(1).
		ToSql()
}

// buildUserExistsQuery selects a marker row when a user other than excludeID
// has column = value.
func buildUserExistsQuery(b sq.StatementBuilderType, column, value, excludeID string) (string, []any, error) {
	query := b.Select("1").
		From(usersTable).
		Where(sq.Eq{column: value})

	if excludeID != "" {
		query = query.Where(sq.NotEq{"id": excludeID})
	}

	return query.Limit(1).ToSql()
}

func buildUpdateUserQuery(b sq.StatementBuilderType, id string, patch models.UserPatch) (string, []any, error) {
	set := make(map[string]any, 4)
	if patch.Username.Set {
		set["username"] = optionalValue(patch.Username)
	}
	if patch.Email.Set {
		set["email"] = optionalValue(patch.Email)
	}
	if patch.FullName.Set {
		set["full_name"] = optionalValue(patch.FullName)
	}
	if patch.PasswordHash.Set {
		set["password_hash"] = optionalValue(patch.PasswordHash)
	}

	// an empty SetMap makes ToSql fail, which is the desired error
	return b.Update(usersTable).
		SetMap(set).
		Where(sq.Eq{"id": id}).
		Suffix(returning(userColumns)).
		ToSql()
}

func buildDeleteUserQuery(b sq.StatementBuilderType, id string) (string, []any, error) {
	return b.Delete(usersTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

// ── tasks ─────────────────────────────────────────────────────────────────────

func buildInsertTaskQuery(b sq.StatementBuilderType, task models.Task) (string, []any, error) {
	return b.Insert(tasksTable).
		Columns(taskColumns...).
		Values(task.ID, task.Title, nullable(task.Description), string(task.Status), nullable(task.DueDate), task.CreatedAt, task.UserID).
		Suffix(returning(taskColumns)).
		ToSql()
}

func buildSelectTasksQuery(b sq.StatementBuilderType, filter models.TaskFilter) (string, []any, error) {
	where := sq.Eq{"user_id": filter.UserID}
	if filter.Status != "" {
		where["status"] = string(filter.Status)
	}

	return b.Select(taskColumns...).
		From(tasksTable).
		Where(where).
		OrderBy("created_at", "id").
		ToSql()
}

func buildSelectTaskQuery(b sq.StatementBuilderType, userID, taskID string) (string, []any, error) {
	return b.Select(taskColumns...).
		From(tasksTable).
		Where(sq.Eq{"id": taskID, "user_id": userID}).
		ToSql()
}

func buildUpdateTaskQuery(b sq.StatementBuilderType, userID, taskID string, update models.TaskUpdate) (string, []any, error) {
	set := make(map[string]any, 4)
	if update.Title.Set {
		set["title"] = optionalValue(update.Title)
	}
	if update.Description.Set {
		set["description"] = optionalValue(update.Description)
	}
	if update.Status.Set {
		if update.Status.Null {
			set["status"] = nil
		} else {
			set["status"] = string(update.Status.Value)
		}
	}
	if update.DueDate.Set {
		if update.DueDate.Null {
			set["due_date"] = nil
		} else {
			set["due_date"] = update.DueDate.Value.UTC()
		}
	}

	return b.Update(tasksTable).
		SetMap(set).
		Where(sq.Eq{"id": taskID, "user_id": userID}).
		Suffix(returning(taskColumns)).
		ToSql()
}

func buildDeleteTaskQuery(b sq.StatementBuilderType, userID, taskID string) (string, []any, error) {
	return b.Delete(tasksTable).
		Where(sq.Eq{"id": taskID, "user_id": userID}).
		ToSql()
}

func buildDeleteTasksByUserQuery(b sq.StatementBuilderType, userID string) (string, []any, error) {
	return b.Delete(tasksTable).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

// ── scanning ──────────────────────────────────────────────────────────────────

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var (
		user     models.User
		fullName *string
	)

	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &fullName, &user.CreatedAt); err != nil {
		return models.User{}, err
	}

	user.FullName = fullName
	user.CreatedAt = user.CreatedAt.UTC()
	return user, nil
}

func scanTask(row rowScanner) (models.Task, error) {
	var (
		task        models.Task
		description *string
		status      string
		dueDate     *time.Time
	)

	if err := row.Scan(&task.ID, &task.Title, &description, &status, &dueDate, &task.CreatedAt, &task.UserID); err != nil {
		return models.Task{}, err
	}

	task.Description = description
	task.Status = models.TaskStatus(status)
	if dueDate != nil {
		utc := dueDate.UTC()
		task.DueDate = &utc
	}
	task.CreatedAt = task.CreatedAt.UTC()
	return task, nil
}
