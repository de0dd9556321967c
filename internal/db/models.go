package db

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// User is a registered person.
type User struct {
	ID        int64  `db:"user_id" json:"id"`
	Username  string `db:"username" json:"username"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	FullName  string `db:"full_name" json:"full_name"`
}

// Project is a project with its manager's display name resolved.
type Project struct {
	ID          int64  `db:"project_id" json:"id"`
	Name        string `db:"name" json:"name"`
	ManagerName string `db:"manager_name" json:"manager"`
}

// Member is one user assigned to a project.
type Member struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"name"`
}

// ProjectDetails is a project plus its members in user id order.
type ProjectDetails struct {
	Project
	Members []Member `json:"members"`
}

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskPending  TaskStatus = "PENDING"
	TaskProgress TaskStatus = "PROGRESS"
	// TaskFinished is allowed by the schema but never set by any command.
	TaskFinished TaskStatus = "FINISHED"
)

// AssignableStatuses are the statuses a new task may start in.
var AssignableStatuses = []TaskStatus{TaskPending, TaskProgress}

// ParseTaskStatus accepts exactly PENDING or PROGRESS.
func ParseTaskStatus(s string) (TaskStatus, error) {
	for _, st := range AssignableStatuses {
		if s == string(st) {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid choice: %q (choose from %s, %s)", s, TaskPending, TaskProgress)
}

// Task is a unit of work in a project assigned to one user.
type Task struct {
	ID          int64      `db:"task_id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Status      TaskStatus `db:"status" json:"status"`
	Hours       int        `db:"hours" json:"hours"`
	Started     *time.Time `db:"started" json:"started,omitempty"`
	ProjectID   int64      `db:"project_id" json:"project_id"`
	ProjectName string     `db:"project_name" json:"project"`
	UserID      int64      `db:"user_id" json:"user_id"`
	Assignee    string     `db:"assignee" json:"assignee"`
}

// NewUser is the input to RegisterUser. A nil FirstName defaults to the
// capitalized username; a nil LastName is stored as NULL.
type NewUser struct {
	Username  string
	FirstName *string
	LastName  *string
}

// NewProject is the input to CreateProject.
type NewProject struct {
	Name      string
	ManagerID int64
}

// NewMembership is the input to AddMember.
type NewMembership struct {
	ProjectID int64
	UserID    int64
}

// NewTask is the input to AssignTask.
type NewTask struct {
	Title     string
	ProjectID int64
	UserID    int64
	Status    TaskStatus
	Hours     int
}

// DefaultFirstName uppercases the first letter of username and lowercases the rest.
func DefaultFirstName(username string) string {
	r, size := utf8.DecodeRuneInString(username)
	if r == utf8.RuneError {
		return username
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(username[size:])
}
