package persistence

import (
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pulseworks/worktrack/modules/worktracking/domain/aggregates/workitem"
)

func itoa(n int) string {
	return strconv.Itoa(n)
}

func tableFor(kind workitem.Kind) string {
	if kind == workitem.KindLiveIssue {
		return "live_issues"
	}
	return "tasks"
}

func parentColumnFor(kind workitem.Kind) string {
	if kind == workitem.KindLiveIssue {
		return "live_issue_id"
	}
	return "task_id"
}

func scanWorkItem(row pgx.Row, kind workitem.Kind) (workitem.WorkItem, error) {
	var (
		id                 int64
		assignedEmployeeID int64
		managerID          *int64
		title              string
		description        string
		priority           string
		status             string
		workloadHours      float64
		dueDate            *time.Time
		completedAt        *time.Time
		createdAt          time.Time
		updatedAt          time.Time
	)
	if err := row.Scan(
		&id, &assignedEmployeeID, &managerID, &title, &description, &priority, &status,
		&workloadHours, &dueDate, &completedAt, &createdAt, &updatedAt,
	); err != nil {
		return workitem.WorkItem{}, err
	}
	return workitem.Hydrate(
		id, kind, assignedEmployeeID, managerID, title, description, priority,
		workitem.Status(status), workloadHours, dueDate, completedAt, createdAt, updatedAt,
	), nil
}

func scanWorkItems(rows pgx.Rows, kind workitem.Kind) ([]workitem.WorkItem, error) {
	out := make([]workitem.WorkItem, 0)
	for rows.Next() {
		item, err := scanWorkItem(rows, kind)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func scanComponent(row pgx.Row) (workitem.Component, error) {
	var (
		id            int64
		taskID        *int64
		liveIssueID   *int64
		componentType string
		complexity    string
		count         int
		hoursPerItem  float64
		totalHours    float64
		status        string
		completedAt   *time.Time
		fileRequired  bool
		fileType      string
		createdAt     time.Time
		updatedAt     time.Time
	)
	if err := row.Scan(
		&id, &taskID, &liveIssueID, &componentType, &complexity, &count,
		&hoursPerItem, &totalHours, &status, &completedAt, &fileRequired, &fileType,
		&createdAt, &updatedAt,
	); err != nil {
		return workitem.Component{}, err
	}
	kind := workitem.KindTask
	workItemID := int64(0)
	if taskID != nil {
		workItemID = *taskID
	} else if liveIssueID != nil {
		kind = workitem.KindLiveIssue
		workItemID = *liveIssueID
	}
	return workitem.HydrateComponent(
		id, workItemID, kind, componentType, complexity, count,
		hoursPerItem, totalHours, workitem.Status(status), completedAt,
		fileRequired, fileType, createdAt, updatedAt,
	), nil
}

func scanComponents(rows pgx.Rows) ([]workitem.Component, error) {
	out := make([]workitem.Component, 0)
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanWorkLog(row pgx.Row) (workitem.WorkLog, error) {
	var (
		id          int64
		componentID int64
		employeeID  int64
		hours       float64
		loggedOn    time.Time
		notes       string
		createdAt   time.Time
	)
	if err := row.Scan(&id, &componentID, &employeeID, &hours, &loggedOn, &notes, &createdAt); err != nil {
		return workitem.WorkLog{}, err
	}
	return workitem.HydrateWorkLog(id, componentID, employeeID, hours, loggedOn, notes, createdAt), nil
}

func scanWorkLogs(rows pgx.Rows) ([]workitem.WorkLog, error) {
	out := make([]workitem.WorkLog, 0)
	for rows.Next() {
		l, err := scanWorkLog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func scanNote(row pgx.Row) (workitem.Note, error) {
	var (
		id          int64
		taskID      *int64
		liveIssueID *int64
		authorID    int64
		body        string
		createdAt   time.Time
	)
	if err := row.Scan(&id, &taskID, &liveIssueID, &authorID, &body, &createdAt); err != nil {
		return workitem.Note{}, err
	}
	kind := workitem.KindTask
	workItemID := int64(0)
	if taskID != nil {
		workItemID = *taskID
	} else if liveIssueID != nil {
		kind = workitem.KindLiveIssue
		workItemID = *liveIssueID
	}
	return workitem.HydrateNote(id, kind, workItemID, authorID, body, createdAt), nil
}

func scanNotes(rows pgx.Rows) ([]workitem.Note, error) {
	out := make([]workitem.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
