package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	todoerrors "github.com/randalmurphal/todos/internal/errors"
)

func strPtr(s string) *string { return &s }

func countRows(t *testing.T, s *Store, table string) int {
	t.Helper()
	var n int
	require.NoError(t, s.DB().Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}

// seed registers ann (1) and bob (2) and a project "Apollo" (1) managed by ann.
func seed(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.RegisterUser(ctx, NewUser{Username: "ann", FirstName: strPtr("Ann"), LastName: strPtr("Lee")}))
	require.NoError(t, s.RegisterUser(ctx, NewUser{Username: "bob", FirstName: strPtr("Bob"), LastName: strPtr("Ray")}))
	require.NoError(t, s.CreateProject(ctx, NewProject{Name: "Apollo", ManagerID: 1}))
}

func requireRejected(t *testing.T, err error, op string) *todoerrors.TodoError {
	t.Helper()
	require.Error(t, err)
	te := todoerrors.AsTodoError(err)
	require.NotNil(t, te, "expected TodoError, got %T", err)
	assert.Equal(t, todoerrors.CodeWriteRejected, te.Code)
	assert.Equal(t, "could not "+op, te.What)
	assert.NotNil(t, te.Cause)
	return te
}

func TestRegisterUser_DefaultsFirstName(t *testing.T) {
	t.Parallel()
	s := NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.RegisterUser(ctx, NewUser{Username: "alice"}))

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, int64(1), users[0].ID)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "Alice", users[0].FirstName)
	assert.Empty(t, users[0].LastName)
	assert.Equal(t, "Alice", users[0].FullName)

	var last *string
	require.NoError(t, s.DB().Get(&last, "SELECT last_name FROM users WHERE user_id = 1"))
	assert.Nil(t, last, "missing last name is stored as NULL")
}

func TestRegisterUser_ExplicitNames(t *testing.T) {
	t.Parallel()
	s := NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.RegisterUser(ctx, NewUser{Username: "jdoe", FirstName: strPtr("Jane"), LastName: strPtr("Doe")}))

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Jane Doe", users[0].FullName)
}

func TestRegisterUser_DuplicateRejected(t *testing.T) {
	t.Parallel()
	s := NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.RegisterUser(ctx, NewUser{Username: "ann"}))
	err := s.RegisterUser(ctx, NewUser{Username: "ann"})

	te := requireRejected(t, err, "save user")
	assert.Contains(t, te.Why, "unique")
	assert.Equal(t, 1, countRows(t, s, "users"))
}

func TestRegisterUser_EmptyUsernameRejected(t *testing.T) {
	t.Parallel()
	s := NewTestStore(t)

	err := s.RegisterUser(context.Background(), NewUser{Username: ""})

	requireRejected(t, err, "save user")
	assert.Equal(t, 0, countRows(t, s, "users"))
}

func TestListUsers_OrderedByID(t *testing.T) {
	t.Parallel()
	s := NewTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"zed", "amy", "mia"} {
		require.NoError(t, s.RegisterUser(ctx, NewUser{Username: name}))
	}

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	for i, want := range []string{"zed", "amy", "mia"} {
		assert.Equal(t, int64(i+1), users[i].ID)
		assert.Equal(t, want, users[i].Username)
	}
}

func TestListUsers_Empty(t *testing.T) {
	t.Parallel()
	s := NewTestStore(t)

	users, err := s.ListUsers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestCreateProject(t *testing.T) {
	t.Parallel()
	s := NewTestStore(t)
	seed(t, s)

	projects, err := s.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, Project{ID: 1, Name: "Apollo", ManagerName: "Ann Lee"}, projects[0])
}

func TestCreateProject_UnknownManager(t *testing.T) {
	t.Parallel()
	s := NewTestStore(t)

	err := s.CreateProject(context.Background(), NewProject{Name: "Ghost", ManagerID: 99})

	te := requireRejected(t, err, "create project")
	assert.Contains(t, te.Why, "does not exist")
	assert.Equal(t, 0, countRows(t, s, "projects"))
}

func TestListProjects_OrderedByManagerThenID(t *testing.T) {
	t.Parallel()
	s := NewTestStore(t)
	ctx := context.Background()
	seed(t, s)

	require.NoError(t, s.CreateProject(ctx, NewProject{Name: "Gemini", ManagerID: 2}))
	require.NoError(t, s.CreateProject(ctx, NewProject{Name: "Mercury", ManagerID: 1}))

	projects, err := s.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 3)
	assert.Equal(t, []int64{1, 3, 2}, []int64{projects[0].ID, projects[1].ID, projects[2].ID})
	assert.Equal(t, "Bob Ray", projects[2].ManagerName)
}

func TestListProjects_ManagerWithoutLastName(t *testing.T) {
	t.Parallel()
	s := NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.RegisterUser(ctx, NewUser{Username: "alice"}))
	require.NoError(t, s.CreateProject(ctx, NewProject{Name: "Solo", ManagerID: 1}))

	projects, err := s.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Alice", projects[0].ManagerName)
}

func TestAddMember(t *testing.T) {
	t.Parallel()
	s := NewTestStore(t)
	ctx := context.Background()
	seed(t, s)

	require.NoError(t, s.AddMember(ctx, NewMembership{ProjectID: 1, UserID: 2}))
	require.NoError(t, s.AddMember(ctx, NewMembership{ProjectID: 1, UserID: 1}))

	details, err := s.ProjectDetails(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, details)
	assert.Equal(t, "Apollo", details.Name)
	assert.Equal(t, "Ann Lee", details.ManagerName)
	assert.Equal(t, []Member{
		{UserID: 1, Username: "ann", FullName: "Ann Lee"},
		{UserID: 2, Username: "bob", FullName: "Bob Ray"},
	}, details.Members)
}

func TestAddMember_DuplicateAllowed(t *testing.T) {
	t.Parallel()
	s := NewTestStore(t)
	ctx := context.Background()
	seed(t, s)

	require.NoError(t, s.AddMember(ctx, NewMembership{ProjectID: 1, UserID: 2}))
	require.NoError(t, s.AddMember(ctx, NewMembership{ProjectID: 1, UserID: 2}))

	assert.Equal(t, 2, countRows(t, s, "members"))
}

func TestAddMember_Rejected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		m    NewMembership
	}{
		{"unknown project", NewMembership{ProjectID: 42, UserID: 1}},
		{"unknown user", NewMembership{ProjectID: 1, UserID: 42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := NewTestStore(t)
			seed(t, s)

			err := s.AddMember(context.Background(), tt.m)

			requireRejected(t, err, "add project member")
			assert.Equal(t, 0, countRows(t, s, "members"))
		})
	}
}

func TestProjectDetails_NoMembers(t *testing.T) {
	t.Parallel()
	s := NewTestStore(t)
	seed(t, s)

	details, err := s.ProjectDetails(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, details)
	assert.Equal(t, int64(1), details.ID)
	assert.NotNil(t, details.Members)
	assert.Empty(t, details.Members)
}

func TestProjectDetails_NotFound(t *testing.T) {
	t.Parallel()
	s := NewTestStore(t)

	details, err := s.ProjectDetails(context.Background(), 7)
	require.NoError(t, err)
	assert.Nil(t, details)
}

func TestAssignTask_ProgressStampsStart(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	s := NewTestStore(t, FixedClock(now))
	ctx := context.Background()
	seed(t, s)

	require.NoError(t, s.AssignTask(ctx, NewTask{Title: "Design", ProjectID: 1, UserID: 2, Status: TaskProgress, Hours: 3}))

	tasks, err := s.ListTasks(ctx, 1)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	task := tasks[0]
	assert.Equal(t, "Design", task.Title)
	assert.Equal(t, TaskProgress, task.Status)
	assert.Equal(t, 3, task.Hours)
	assert.Equal(t, "Apollo", task.ProjectName)
	assert.Equal(t, "Bob Ray", task.Assignee)
	require.NotNil(t, task.Started)
	assert.True(t, now.Equal(*task.Started), "started = %v, want %v", task.Started, now)
}

func TestAssignTask_PendingLeavesStartUnset(t *testing.T) {
	t.Parallel()
	s := NewTestStore(t)
	ctx := context.Background()
	seed(t, s)

	require.NoError(t, s.AssignTask(ctx, NewTask{Title: "Plan", ProjectID: 1, UserID: 1, Status: TaskPending, Hours: 1}))
	// Empty status means PENDING.
	require.NoError(t, s.AssignTask(ctx, NewTask{Title: "Review", ProjectID: 1, UserID: 1, Hours: 1}))

	tasks, err := s.ListTasks(ctx, 0)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	for _, task := range tasks {
		assert.Equal(t, TaskPending, task.Status)
		assert.Nil(t, task.Started)
	}
}

func TestAssignTask_Rejected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		task NewTask
		why  string
	}{
		{"unknown project", NewTask{Title: "x", ProjectID: 9, UserID: 1, Hours: 1}, "does not exist"},
		{"unknown user", NewTask{Title: "x", ProjectID: 1, UserID: 9, Hours: 1}, "does not exist"},
		{"negative hours", NewTask{Title: "x", ProjectID: 1, UserID: 1, Hours: -2}, "allowed range"},
		{"bad status", NewTask{Title: "x", ProjectID: 1, UserID: 1, Hours: 1, Status: "DONE"}, "allowed range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := NewTestStore(t)
			seed(t, s)

			err := s.AssignTask(context.Background(), tt.task)

			te := requireRejected(t, err, "assign task")
			assert.Contains(t, te.Why, tt.why)
			assert.Equal(t, 0, countRows(t, s, "tasks"))
		})
	}
}

func TestListTasks_FiltersByProject(t *testing.T) {
	t.Parallel()
	s := NewTestStore(t)
	ctx := context.Background()
	seed(t, s)
	require.NoError(t, s.CreateProject(ctx, NewProject{Name: "Gemini", ManagerID: 2}))

	require.NoError(t, s.AssignTask(ctx, NewTask{Title: "a", ProjectID: 1, UserID: 1, Hours: 1}))
	require.NoError(t, s.AssignTask(ctx, NewTask{Title: "b", ProjectID: 2, UserID: 2, Hours: 1}))
	require.NoError(t, s.AssignTask(ctx, NewTask{Title: "c", ProjectID: 1, UserID: 2, Hours: 1}))

	all, err := s.ListTasks(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	apollo, err := s.ListTasks(ctx, 1)
	require.NoError(t, err)
	require.Len(t, apollo, 2)
	assert.Equal(t, "a", apollo[0].Title)
	assert.Equal(t, "c", apollo[1].Title)

	none, err := s.ListTasks(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRunWrite_CommitsOnSuccess(t *testing.T) {
	t.Parallel()
	s := NewTestStore(t)
	ctx := context.Background()

	err := s.RunWrite(ctx, "save users", func(tx *Tx) error {
		if _, err := tx.Exec("INSERT INTO users (username) VALUES (?)", "a"); err != nil {
			return err
		}
		_, err := tx.Exec("INSERT INTO users (username) VALUES (?)", "b")
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, 2, countRows(t, s, "users"))
}

func TestRunWrite_RollsBackEveryStatement(t *testing.T) {
	t.Parallel()
	s := NewTestStore(t)
	ctx := context.Background()

	err := s.RunWrite(ctx, "save users", func(tx *Tx) error {
		if _, err := tx.Exec("INSERT INTO users (username) VALUES (?)", "a"); err != nil {
			return err
		}
		// Duplicate username violates the unique constraint.
		_, err := tx.Exec("INSERT INTO users (username) VALUES (?)", "a")
		return err
	})

	te := requireRejected(t, err, "save users")
	assert.Contains(t, te.Why, "unique")
	assert.Equal(t, 0, countRows(t, s, "users"))
}

func TestRunWrite_NonDatabaseError(t *testing.T) {
	t.Parallel()
	s := NewTestStore(t)
	boom := errors.New("boom")

	err := s.RunWrite(context.Background(), "do thing", func(tx *Tx) error {
		_, _ = tx.Exec("INSERT INTO users (username) VALUES (?)", "a")
		return boom
	})

	te := requireRejected(t, err, "do thing")
	assert.Empty(t, te.Why)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, countRows(t, s, "users"))
}

func TestRunWrite_CanceledContext(t *testing.T) {
	t.Parallel()
	s := NewTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.RunWrite(ctx, "save user", func(tx *Tx) error {
		called = true
		return nil
	})

	requireRejected(t, err, "save user")
	assert.False(t, called)
}

func TestDefaultFirstName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"alice", "Alice"},
		{"ALICE", "Alice"},
		{"mcDonald", "Mcdonald"},
		{"élodie", "Élodie"},
		{"42abc", "42abc"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DefaultFirstName(tt.in), "DefaultFirstName(%q)", tt.in)
	}
}

func TestParseTaskStatus(t *testing.T) {
	t.Parallel()

	for _, ok := range []string{"PENDING", "PROGRESS"} {
		st, err := ParseTaskStatus(ok)
		require.NoError(t, err)
		assert.Equal(t, TaskStatus(ok), st)
	}
	for _, bad := range []string{"FINISHED", "pending", "", "DONE"} {
		_, err := ParseTaskStatus(bad)
		assert.Error(t, err, "ParseTaskStatus(%q)", bad)
	}
}
