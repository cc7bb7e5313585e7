package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/timesheet-api/internal/models"
)

// memoryStore is the process-local entity store. One write lock guards all three
// collections, so lookup-before-create and compare-and-set transitions are atomic.
// Reads hand out copies; callers never share state with the store.
type memoryStore struct {
	mu sync.RWMutex

	users     []*models.User
	userByID  map[string]*models.User
	userEmail map[string]*models.User

	tasks    []*models.Task
	taskByID map[string]*models.Task

	entries     []*models.TimesheetEntry
	entryByID   map[string]*models.TimesheetEntry
	entryByPair map[pairKey]*models.TimesheetEntry
}

type pairKey struct {
	taskID string
	userID string
}

// NewMemory creates repositories backed by a single in-memory store.
// Construct one per process or per test.
func NewMemory() *Repositories {
	s := &memoryStore{
		userByID:    make(map[string]*models.User),
		userEmail:   make(map[string]*models.User),
		taskByID:    make(map[string]*models.Task),
		entryByID:   make(map[string]*models.TimesheetEntry),
		entryByPair: make(map[pairKey]*models.TimesheetEntry),
	}
	return &Repositories{
		User:      &memUserRepo{s},
		Task:      &memTaskRepo{s},
		Timesheet: &memTimesheetRepo{s},
	}
}

// Users

type memUserRepo struct{ s *memoryStore }

var _ UserRepository = (*memUserRepo)(nil)

func (r *memUserRepo) Create(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	email := strings.ToLower(user.Email)
	if _, exists := r.s.userEmail[email]; exists {
		return ErrDuplicateEmail
	}
	u := *user
	u.Email = email
	r.s.users = append(r.s.users, &u)
	r.s.userByID[u.ID] = &u
	r.s.userEmail[email] = &u
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return copyUser(r.s.userByID[id]), nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return copyUser(r.s.userEmail[strings.ToLower(email)]), nil
}

func (r *memUserRepo) List(ctx context.Context) ([]*models.User, error) {
	return r.filter(func(*models.User) bool { return true }), nil
}

func (r *memUserRepo) ListByRole(ctx context.Context, role models.Role) ([]*models.User, error) {
	return r.filter(func(u *models.User) bool { return u.Role == role }), nil
}

func (r *memUserRepo) filter(keep func(*models.User) bool) []*models.User {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*models.User, 0)
	for _, u := range r.s.users {
		if keep(u) {
			out = append(out, copyUser(u))
		}
	}
	return out
}

func copyUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// Tasks

type memTaskRepo struct{ s *memoryStore }

var _ TaskRepository = (*memTaskRepo)(nil)

func (r *memTaskRepo) Create(ctx context.Context, task *models.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t := *task
	r.s.tasks = append(r.s.tasks, &t)
	r.s.taskByID[t.ID] = &t
	return nil
}

func (r *memTaskRepo) GetByID(ctx context.Context, id string) (*models.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return copyTask(r.s.taskByID[id]), nil
}

func (r *memTaskRepo) List(ctx context.Context) ([]*models.Task, error) {
	return r.filter(func(*models.Task) bool { return true }), nil
}

func (r *memTaskRepo) ListByAssignee(ctx context.Context, assigneeID string) ([]*models.Task, error) {
	return r.filter(func(t *models.Task) bool { return t.AssigneeID == assigneeID }), nil
}

func (r *memTaskRepo) filter(keep func(*models.Task) bool) []*models.Task {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*models.Task, 0)
	for _, t := range r.s.tasks {
		if keep(t) {
			out = append(out, copyTask(t))
		}
	}
	return out
}

func copyTask(t *models.Task) *models.Task {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// Timesheet entries

type memTimesheetRepo struct{ s *memoryStore }

var _ TimesheetRepository = (*memTimesheetRepo)(nil)

func (r *memTimesheetRepo) Create(ctx context.Context, entry *models.TimesheetEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := pairKey{taskID: entry.TaskID, userID: entry.UserID}
	if _, exists := r.s.entryByPair[key]; exists {
		return ErrDuplicateEntry
	}
	e := copyEntry(entry)
	r.s.entries = append(r.s.entries, e)
	r.s.entryByID[e.ID] = e
	r.s.entryByPair[key] = e
	return nil
}

func (r *memTimesheetRepo) GetByID(ctx context.Context, id string) (*models.TimesheetEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return copyEntry(r.s.entryByID[id]), nil
}

func (r *memTimesheetRepo) FindByTaskAndUser(ctx context.Context, taskID, userID string) (*models.TimesheetEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return copyEntry(r.s.entryByPair[pairKey{taskID: taskID, userID: userID}]), nil
}

func (r *memTimesheetRepo) List(ctx context.Context) ([]*models.TimesheetEntry, error) {
	return r.filter(func(*models.TimesheetEntry) bool { return true }), nil
}

func (r *memTimesheetRepo) ListByUser(ctx context.Context, userID string) ([]*models.TimesheetEntry, error) {
	return r.filter(func(e *models.TimesheetEntry) bool { return e.UserID == userID }), nil
}

func (r *memTimesheetRepo) ListByTask(ctx context.Context, taskID string) ([]*models.TimesheetEntry, error) {
	return r.filter(func(e *models.TimesheetEntry) bool { return e.TaskID == taskID }), nil
}

func (r *memTimesheetRepo) ListSubmitted(ctx context.Context) ([]*models.TimesheetEntry, error) {
	return r.filter(func(e *models.TimesheetEntry) bool { return e.Submitted }), nil
}

func (r *memTimesheetRepo) UpdateDraft(ctx context.Context, id string, actualHours float64, notes string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.entryByID[id]
	if !ok || e.Submitted {
		return false, nil
	}
	e.ActualHours = actualHours
	e.Notes = notes
	return true, nil
}

func (r *memTimesheetRepo) MarkSubmitted(ctx context.Context, id string, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.entryByID[id]
	if !ok || e.Submitted {
		return false, nil
	}
	e.Submitted = true
	e.SubmittedAt = &at
	return true, nil
}

func (r *memTimesheetRepo) filter(keep func(*models.TimesheetEntry) bool) []*models.TimesheetEntry {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*models.TimesheetEntry, 0)
	for _, e := range r.s.entries {
		if keep(e) {
			out = append(out, copyEntry(e))
		}
	}
	return out
}

func copyEntry(e *models.TimesheetEntry) *models.TimesheetEntry {
	if e == nil {
		return nil
	}
	c := *e
	if e.SubmittedAt != nil {
		at := *e.SubmittedAt
		c.SubmittedAt = &at
	}
	return &c
}
