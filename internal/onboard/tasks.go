package onboard

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Task statuses. A task moves pending -> running -> succeeded|failed.
const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Task is one recorded onboarding attempt.
type Task struct {
	ID         string    `json:"id"`
	IPAddress  string    `json:"ip_address"`
	Port       int       `json:"port"`
	Site       string    `json:"site"`
	Platform   string    `json:"platform,omitempty"`
	Role       string    `json:"role,omitempty"`
	Status     string    `json:"status"`
	FailReason string    `json:"fail_reason,omitempty"`
	Message    string    `json:"message,omitempty"`
	DeviceID   int       `json:"device_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TaskStore provides database access for the onboarding task log.
type TaskStore struct {
	db *sql.DB
}

// NewTaskStore creates a TaskStore wrapping the given database connection.
func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db}
}

// CreateTask records a new pending task for the given request and
// returns it with a generated ID.
func (s *TaskStore) CreateTask(ctx context.Context, req Request) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:        uuid.NewString(),
		IPAddress: req.IPAddress,
		Port:      req.Port,
		Site:      req.Site,
		Platform:  req.Platform,
		Role:      req.Role,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO onboarding_tasks (id, ip_address, port, site, platform, role, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.IPAddress, task.Port, task.Site, task.Platform,
		task.Role, task.Status, task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert onboarding task: %w", err)
	}
	return task, nil
}

// MarkRunning transitions the task to running.
func (s *TaskStore) MarkRunning(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, StatusRunning, "", "", 0)
}

// MarkSucceeded transitions the task to succeeded and records the
// inventory device it resolved to.
func (s *TaskStore) MarkSucceeded(ctx context.Context, id string, deviceID int) error {
	return s.setStatus(ctx, id, StatusSucceeded, "", "", deviceID)
}

// MarkFailed transitions the task to failed with a classified reason.
func (s *TaskStore) MarkFailed(ctx context.Context, id string, reason Reason, message string) error {
	return s.setStatus(ctx, id, StatusFailed, string(reason), message, 0)
}

func (s *TaskStore) setStatus(ctx context.Context, id, status, failReason, message string, deviceID int) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE onboarding_tasks
		SET status = ?, fail_reason = ?, message = ?, device_id = ?, updated_at = ?
		WHERE id = ?`,
		status, failReason, message, deviceID, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("update onboarding task %s: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("onboarding task not found: %s", id)
	}
	return nil
}

// GetTask returns the task with the given ID, or nil if absent.
func (s *TaskStore) GetTask(ctx context.Context, id string) (*Task, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, ip_address, port, site, platform, role, status, fail_reason, message, device_id, created_at, updated_at
		FROM onboarding_tasks WHERE id = ?`, id)

	var t Task
	err := row.Scan(&t.ID, &t.IPAddress, &t.Port, &t.Site, &t.Platform, &t.Role,
		&t.Status, &t.FailReason, &t.Message, &t.DeviceID, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get onboarding task %s: %w", id, err)
	}
	return &t, nil
}

// ListTasks returns the most recent tasks, newest first.
func (s *TaskStore) ListTasks(ctx context.Context, limit int) ([]Task, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ip_address, port, site, platform, role, status, fail_reason, message, device_id, created_at, updated_at
		FROM onboarding_tasks ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list onboarding tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.IPAddress, &t.Port, &t.Site, &t.Platform, &t.Role,
			&t.Status, &t.FailReason, &t.Message, &t.DeviceID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan onboarding task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
