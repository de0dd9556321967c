package db

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateProject inserts a project managed by an existing user.
func (s *Store) CreateProject(ctx context.Context, p NewProject) error {
	return s.RunWrite(ctx, "create project", func(tx *Tx) error {
		_, err := tx.Exec(s.q.insertProject, p.Name, p.ManagerID)
		return err
	})
}

// ListProjects returns every project with its manager's full name, ordered by
// manager id and then project id.
func (s *Store) ListProjects(ctx context.Context) ([]Project, error) {
	projects := []Project{}
	if err := s.db.SelectContext(ctx, &projects, s.q.listProjects); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// AddMember links a user to a project. The same pair may be added twice.
func (s *Store) AddMember(ctx context.Context, m NewMembership) error {
	return s.RunWrite(ctx, "add project member", func(tx *Tx) error {
		_, err := tx.Exec(s.q.insertMember, m.ProjectID, m.UserID)
		return err
	})
}

type projectDetailsRow struct {
	ProjectID      int64          `db:"project_id"`
	Name           string         `db:"name"`
	ManagerName    string         `db:"manager_name"`
	MemberID       sql.NullInt64  `db:"member_id"`
	MemberUsername sql.NullString `db:"member_username"`
	MemberName     sql.NullString `db:"member_name"`
}

// ProjectDetails returns a project with its members, or nil if no project
// has that id. A project without members has an empty Members slice.
func (s *Store) ProjectDetails(ctx context.Context, projectID int64) (*ProjectDetails, error) {
	var rows []projectDetailsRow
	if err := s.db.SelectContext(ctx, &rows, s.q.projectDetails, projectID); err != nil {
		return nil, fmt.Errorf("get project %d: %w", projectID, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	first := rows[0]
	details := &ProjectDetails{
		Project: Project{
			ID:          first.ProjectID,
			Name:        first.Name,
			ManagerName: first.ManagerName,
		},
		Members: []Member{},
	}
	for _, r := range rows {
		// The outer join yields one all-NULL member row when nobody is assigned.
		if !r.MemberID.Valid {
			continue
		}
		details.Members = append(details.Members, Member{
			UserID:   r.MemberID.Int64,
			Username: r.MemberUsername.String,
			FullName: r.MemberName.String,
		})
	}
	return details, nil
}
