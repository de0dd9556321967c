package db

import (
	"github.com/randalmurphal/todos/internal/db/driver"
)

// queries holds every statement the store issues, rendered once for the
// store's dialect. Statements are written with ? and rebound.
type queries struct {
	insertUser       string
	listUsers        string
	insertProject    string
	listProjects     string
	insertMember     string
	projectDetails   string
	insertTask       string
	listTasks        string
	listProjectTasks string
}

// fullName renders "first last" for the users row aliased as alias,
// trimmed so a missing half leaves no stray space.
func fullName(drv driver.Driver, alias string) string {
	return "TRIM(" + drv.Concat(
		"COALESCE("+alias+".first_name, '')",
		"' '",
		"COALESCE("+alias+".last_name, '')",
	) + ")"
}

func newQueries(drv driver.Driver, rebind func(string) string) queries {
	manager := fullName(drv, "u")
	member := fullName(drv, "mu")
	assignee := fullName(drv, "u")
	user := fullName(drv, "u")

	taskSelect := `
		SELECT t.task_id, t.title, t.status, t.hours, t.started,
		       t.project_id, p.name AS project_name,
		       t.user_id, ` + assignee + ` AS assignee
		FROM tasks t
		JOIN projects p ON p.project_id = t.project_id
		JOIN users u ON u.user_id = t.user_id`

	q := queries{
		insertUser: `INSERT INTO users (username, first_name, last_name) VALUES (?, ?, ?)`,
		listUsers: `
			SELECT u.user_id, u.username,
			       COALESCE(u.first_name, '') AS first_name,
			       COALESCE(u.last_name, '') AS last_name,
			       ` + user + ` AS full_name
			FROM users u
			ORDER BY u.user_id`,
		insertProject: `INSERT INTO projects (name, manager_id) VALUES (?, ?)`,
		listProjects: `
			SELECT p.project_id, p.name, ` + manager + ` AS manager_name
			FROM projects p
			JOIN users u ON u.user_id = p.manager_id
			ORDER BY u.user_id, p.project_id`,
		insertMember: `INSERT INTO members (project_id, user_id) VALUES (?, ?)`,
		projectDetails: `
			SELECT p.project_id, p.name, ` + manager + ` AS manager_name,
			       mu.user_id AS member_id, mu.username AS member_username,
			       ` + member + ` AS member_name
			FROM projects p
			JOIN users u ON u.user_id = p.manager_id
			LEFT OUTER JOIN members m ON m.project_id = p.project_id
			LEFT OUTER JOIN users mu ON mu.user_id = m.user_id
			WHERE p.project_id = ?
			ORDER BY mu.user_id`,
		insertTask: `
			INSERT INTO tasks (title, project_id, user_id, status, hours, started)
			VALUES (?, ?, ?, ?, ?, ?)`,
		listTasks:        taskSelect + ` ORDER BY t.task_id`,
		listProjectTasks: taskSelect + ` WHERE t.project_id = ? ORDER BY t.task_id`,
	}

	q.insertUser = rebind(q.insertUser)
	q.insertProject = rebind(q.insertProject)
	q.insertMember = rebind(q.insertMember)
	q.projectDetails = rebind(q.projectDetails)
	q.insertTask = rebind(q.insertTask)
	q.listProjectTasks = rebind(q.listProjectTasks)
	return q
}
