package db

import (
	"context"
	"fmt"
	"time"
)

// AssignTask inserts a task. Tasks created in PROGRESS are stamped with the
// store clock; PENDING tasks have no start time.
func (s *Store) AssignTask(ctx context.Context, t NewTask) error {
	status := t.Status
	if status == "" {
		status = TaskPending
	}

	var started *time.Time
	if status == TaskProgress {
		now := s.now()
		started = &now
	}

	return s.RunWrite(ctx, "assign task", func(tx *Tx) error {
		_, err := tx.Exec(s.q.insertTask, t.Title, t.ProjectID, t.UserID, string(status), t.Hours, started)
		return err
	})
}

// ListTasks returns tasks ordered by id. A projectID of zero lists every project.
func (s *Store) ListTasks(ctx context.Context, projectID int64) ([]Task, error) {
	tasks := []Task{}
	var err error
	if projectID == 0 {
		err = s.db.SelectContext(ctx, &tasks, s.q.listTasks)
	} else {
		err = s.db.SelectContext(ctx, &tasks, s.q.listProjectTasks, projectID)
	}
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}
