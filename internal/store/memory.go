package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/MKhiriev/go-task-tracker/models"
)

// memoryDB is the shared state of the in-memory backend. Users and tasks
// live behind one lock so that deleting a user can drop its tasks the same
// way the SQL foreign key cascade does.
type memoryDB struct {
	mu    sync.RWMutex
	users map[string]models.User
	tasks map[string]models.Task
}

func newMemoryDB() *memoryDB {
	return &memoryDB{
		users: make(map[string]models.User),
		tasks: make(map[string]models.Task),
	}
}

// conflictLocked returns the uniqueness error for username/email owned by a
// user other than excludeID. Email is checked first. Caller holds mu.
func (m *memoryDB) conflictLocked(username, email, excludeID string) error {
	for id, u := range m.users {
		if id != excludeID && email != "" && u.Email == email {
			return ErrEmailAlreadyExists
		}
	}
	for id, u := range m.users {
		if id != excludeID && username != "" && u.Username == username {
			return ErrUsernameAlreadyExists
		}
	}
	return nil
}

// memoryUserRepository implements [UserRepository] on top of memoryDB.
type memoryUserRepository struct {
	db *memoryDB
}

func (r *memoryUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if err := r.db.conflictLocked(user.Username, user.Email, ""); err != nil {
		return models.User{}, err
	}

	user.FullName = clonePtr(user.FullName)
	r.db.users[user.ID] = user
	return cloneUser(user), nil
}

func (r *memoryUserRepository) FindUserByID(ctx context.Context, id string) (models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	user, found := r.db.users[id]
	if !found {
		return models.User{}, ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (r *memoryUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, user := range r.db.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}
	return models.User{}, ErrUserNotFound
}

func (r *memoryUserRepository) EmailExists(ctx context.Context, email, excludeID string) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return r.db.conflictLocked("", email, excludeID) != nil, nil
}

func (r *memoryUserRepository) UsernameExists(ctx context.Context, username, excludeID string) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return r.db.conflictLocked(username, "", excludeID) != nil, nil
}

func (r *memoryUserRepository) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	user, found := r.db.users[id]
	if !found {
		return models.User{}, ErrUserNotFound
	}

	var username, email string
	if patch.Username.Set {
		username = patch.Username.Value
	}
	if patch.Email.Set {
		email = patch.Email.Value
	}
	if err := r.db.conflictLocked(username, email, id); err != nil {
		return models.User{}, err
	}

	if patch.Username.Set {
		user.Username = patch.Username.Value
	}
	if patch.Email.Set {
		user.Email = patch.Email.Value
	}
	if patch.FullName.Set {
		user.FullName = patch.FullName.Ptr()
	}
	if patch.PasswordHash.Set {
		user.PasswordHash = patch.PasswordHash.Value
	}

	r.db.users[id] = user
	return cloneUser(user), nil
}

func (r *memoryUserRepository) DeleteUser(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, found := r.db.users[id]; !found {
		return ErrUserNotFound
	}
	delete(r.db.users, id)

	for taskID, task := range r.db.tasks {
		if task.UserID == id {
			delete(r.db.tasks, taskID)
		}
	}
	return nil
}

// memoryTaskRepository implements [TaskRepository] on top of memoryDB.
type memoryTaskRepository struct {
	db *memoryDB
}

func (r *memoryTaskRepository) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	task = cloneTask(task)
	r.db.tasks[task.ID] = task
	return cloneTask(task), nil
}

func (r *memoryTaskRepository) ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	tasks := make([]models.Task, 0)
	for _, task := range r.db.tasks {
		if task.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && task.Status != filter.Status {
			continue
		}
		tasks = append(tasks, cloneTask(task))
	}

	slices.SortFunc(tasks, func(a, b models.Task) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	return tasks, nil
}

func (r *memoryTaskRepository) GetTask(ctx context.Context, userID, taskID string) (models.Task, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	task, found := r.db.tasks[taskID]
	if !found || task.UserID != userID {
		return models.Task{}, ErrTaskNotFound
	}
	return cloneTask(task), nil
}

func (r *memoryTaskRepository) UpdateTask(ctx context.Context, userID, taskID string, update models.TaskUpdate) (models.Task, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	task, found := r.db.tasks[taskID]
	if !found || task.UserID != userID {
		return models.Task{}, ErrTaskNotFound
	}

	if update.Title.Set {
		task.Title = update.Title.Value
	}
	if update.Description.Set {
		task.Description = update.Description.Ptr()
	}
	if update.Status.Set {
		task.Status = update.Status.Value
	}
	if update.DueDate.Set {
		if due := update.DueDate.Ptr(); due != nil {
			utc := due.UTC()
			task.DueDate = &utc
		} else {
			task.DueDate = nil
		}
	}

	r.db.tasks[taskID] = task
	return cloneTask(task), nil
}

func (r *memoryTaskRepository) DeleteTask(ctx context.Context, userID, taskID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	task, found := r.db.tasks[taskID]
	if !found || task.UserID != userID {
		return ErrTaskNotFound
	}
	delete(r.db.tasks, taskID)
	return nil
}

func (r *memoryTaskRepository) DeleteTasksByUser(ctx context.Context, userID string) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var deleted int64
	for taskID, task := range r.db.tasks {
		if task.UserID == userID {
			delete(r.db.tasks, taskID)
			deleted++
		}
	}
	return deleted, nil
}

// Copies keep callers from mutating stored records through shared pointers.

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneUser(u models.User) models.User {
	u.FullName = clonePtr(u.FullName)
	return u
}

func cloneTask(t models.Task) models.Task {
	t.Description = clonePtr(t.Description)
	t.DueDate = clonePtr(t.DueDate)
	return t
}
