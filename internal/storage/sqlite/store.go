package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"manifest/internal/models"
)

// Store is the seed catalog: the goal/milestone/task tables every view is
// built from. Views never write back to it.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open initializes the SQLite catalog and runs the required migrations.
func Open(dbPath string, logger *slog.Logger) (*Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("empty database path")
	}

	if logger == nil {
		logger = slog.Default()
	}

	if err := ensureDir(dbPath); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=ON", dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	conn.SetMaxOpenConns(1)
	conn.SetConnMaxLifetime(0)

	s := &Store{db: conn, logger: logger}
	if err := s.migrate(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return s, nil
}

// Close releases the database resources.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func ensureDir(dbPath string) error {
	if dbPath == ":memory:" {
		return nil
	}
	dir := filepath.Dir(dbPath)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS goals (
            id TEXT PRIMARY KEY,
            title TEXT NOT NULL,
            deadline TEXT,
            category TEXT NOT NULL DEFAULT '',
            position INTEGER NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS milestones (
            id TEXT PRIMARY KEY,
            goal_id TEXT NOT NULL,
            title TEXT NOT NULL,
            due_date TEXT,
            position INTEGER NOT NULL,
            FOREIGN KEY(goal_id) REFERENCES goals(id) ON DELETE CASCADE
        );`,
		`CREATE TABLE IF NOT EXISTS tasks (
            id TEXT PRIMARY KEY,
            milestone_id TEXT NOT NULL,
            goal_id TEXT NOT NULL,
            title TEXT NOT NULL,
            due_date TEXT,
            priority TEXT NOT NULL DEFAULT 'Medium',
            completed INTEGER NOT NULL DEFAULT 0,
            scheduled_at TEXT,
            position INTEGER NOT NULL,
            FOREIGN KEY(milestone_id) REFERENCES milestones(id) ON DELETE CASCADE,
            FOREIGN KEY(goal_id) REFERENCES goals(id) ON DELETE CASCADE
        );`,
		`CREATE INDEX IF NOT EXISTS idx_milestones_goal ON milestones(goal_id);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_milestone ON tasks(milestone_id);`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// IsEmpty reports whether the catalog holds no goals.
func (s *Store) IsEmpty(ctx context.Context) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM goals`).Scan(&n); err != nil {
		return false, fmt.Errorf("count goals: %w", err)
	}
	return n == 0, nil
}

// Replace swaps the whole catalog for ds in a single transaction.
func (s *Store) Replace(ctx context.Context, ds models.Dataset) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"tasks", "milestones", "goals"} {
		if _, err = tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for i, g := range ds.Goals {
		if _, err = tx.ExecContext(ctx, `INSERT INTO goals(id, title, deadline, category, position) VALUES(?, ?, ?, ?, ?)`,
			g.ID, g.Title, formatTime(g.Deadline), g.Category, i); err != nil {
			return fmt.Errorf("insert goal %s: %w", g.ID, err)
		}
	}
	for i, m := range ds.Milestones {
		if _, err = tx.ExecContext(ctx, `INSERT INTO milestones(id, goal_id, title, due_date, position) VALUES(?, ?, ?, ?, ?)`,
			m.ID, m.GoalID, m.Title, formatTime(m.DueDate), i); err != nil {
			return fmt.Errorf("insert milestone %s: %w", m.ID, err)
		}
	}
	for i, t := range ds.Tasks {
		if _, err = tx.ExecContext(ctx, `INSERT INTO tasks(id, milestone_id, goal_id, title, due_date, priority, completed, scheduled_at, position)
            VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.MilestoneID, t.GoalID, t.Title, formatTime(t.DueDate), string(t.Priority), t.Completed, formatTime(t.ScheduledDateTime), i); err != nil {
			return fmt.Errorf("insert task %s: %w", t.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	s.logger.Info("catalog replaced",
		slog.Int("goals", len(ds.Goals)),
		slog.Int("milestones", len(ds.Milestones)),
		slog.Int("tasks", len(ds.Tasks)))
	return nil
}

// Load reads the catalog back in insertion order.
func (s *Store) Load(ctx context.Context) (models.Dataset, error) {
	var ds models.Dataset
	var err error
	if ds.Goals, err = s.listGoals(ctx); err != nil {
		return models.Dataset{}, err
	}
	if ds.Milestones, err = s.listMilestones(ctx); err != nil {
		return models.Dataset{}, err
	}
	if ds.Tasks, err = s.listTasks(ctx); err != nil {
		return models.Dataset{}, err
	}
	return ds, nil
}

func (s *Store) listGoals(ctx context.Context) ([]models.Goal, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, deadline, category FROM goals ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		var g models.Goal
		var deadline sql.NullString
		if err := rows.Scan(&g.ID, &g.Title, &deadline, &g.Category); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		if g.Deadline, err = parseTime(deadline); err != nil {
			return nil, fmt.Errorf("goal %s deadline: %w", g.ID, err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (s *Store) listMilestones(ctx context.Context) ([]models.Milestone, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, goal_id, title, due_date FROM milestones ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list milestones: %w", err)
	}
	defer rows.Close()

	var milestones []models.Milestone
	for rows.Next() {
		var m models.Milestone
		var due sql.NullString
		if err := rows.Scan(&m.ID, &m.GoalID, &m.Title, &due); err != nil {
			return nil, fmt.Errorf("scan milestone: %w", err)
		}
		if m.DueDate, err = parseTime(due); err != nil {
			return nil, fmt.Errorf("milestone %s due date: %w", m.ID, err)
		}
		milestones = append(milestones, m)
	}
	return milestones, rows.Err()
}

func (s *Store) listTasks(ctx context.Context) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, milestone_id, goal_id, title, due_date, priority, completed, scheduled_at
        FROM tasks ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		var priority string
		var due, scheduled sql.NullString
		if err := rows.Scan(&t.ID, &t.MilestoneID, &t.GoalID, &t.Title, &due, &priority, &t.Completed, &scheduled); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		t.Priority = models.Priority(priority)
		if _, ok := models.ValidPriorities[t.Priority]; !ok {
			t.Priority = models.PriorityMedium
		}
		if t.DueDate, err = parseTime(due); err != nil {
			return nil, fmt.Errorf("task %s due date: %w", t.ID, err)
		}
		if t.ScheduledDateTime, err = parseTime(scheduled); err != nil {
			return nil, fmt.Errorf("task %s schedule: %w", t.ID, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func formatTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(time.RFC3339Nano), Valid: true}
}

func parseTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, v.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
