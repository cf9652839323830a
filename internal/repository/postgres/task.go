package postgres

import (
	"context"
	"database/sql"

	"github.com/pratik-mahalle/bizdesk/internal/domain/task"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
)

type TaskRepository struct {
	db *DB
}

func NewTaskRepository(db *DB) task.Repository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, user_id, title, description, status, priority, assignee, due_date, created_at, updated_at`

func (r *TaskRepository) Create(ctx context.Context, t *task.Task) (int64, error) {
	ts := now()
	t.CreatedAt = ts
	t.UpdatedAt = ts

	query := `
		INSERT INTO tasks (user_id, title, description, status, priority, assignee, due_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := r.db.insert(ctx, "tasks", query,
		t.UserID, t.Title, t.Description, t.Status, t.Priority, t.Assignee, t.DueDate, toMicros(ts), toMicros(ts),
	)
	if err != nil {
		return 0, errors.DatabaseError("Failed to create task", err)
	}
	t.ID = id
	return id, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, userID int64, id int64) (*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = ? AND id = ?`

	t, err := scanTask(r.db.queryRow(ctx, "select", "tasks", query, userID, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Task")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get task", err)
	}
	return t, nil
}

func (r *TaskRepository) Update(ctx context.Context, t *task.Task) error {
	t.UpdatedAt = now()

	query := `
		UPDATE tasks
		SET title = ?, description = ?, status = ?, priority = ?, assignee = ?, due_date = ?, updated_at = ?
		WHERE user_id = ? AND id = ?`

	result, err := r.db.exec(ctx, "update", "tasks", query,
		t.Title, t.Description, t.Status, t.Priority, t.Assignee, t.DueDate, toMicros(t.UpdatedAt), t.UserID, t.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update task", err)
	}
	return affectedOne(result, "Task")
}

func (r *TaskRepository) Delete(ctx context.Context, userID int64, id int64) error {
	result, err := r.db.exec(ctx, "delete", "tasks", `DELETE FROM tasks WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return errors.DatabaseError("Failed to delete task", err)
	}
	return affectedOne(result, "Task")
}

func (r *TaskRepository) List(ctx context.Context, userID int64, filter task.Filter) ([]*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = ?`
	args := []interface{}{userID}

	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.Priority != "" {
		query += " AND priority = ?"
		args = append(args, filter.Priority)
	}
	if filter.Assignee != "" {
		query += " AND assignee = ?"
		args = append(args, filter.Assignee)
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.query(ctx, "select", "tasks", query, args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list tasks", err)
	}
	defer rows.Close()

	tasks := make([]*task.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan task", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate tasks", err)
	}

	return tasks, nil
}

func (r *TaskRepository) CountByStatus(ctx context.Context, userID int64) (map[string]int, error) {
	return countByStatus(ctx, r.db, "tasks", userID)
}

func scanTask(row rowScanner) (*task.Task, error) {
	var t task.Task
	var createdAt, updatedAt int64

	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.Assignee, &t.DueDate, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	t.CreatedAt = fromMicros(createdAt)
	t.UpdatedAt = fromMicros(updatedAt)
	return &t, nil
}
