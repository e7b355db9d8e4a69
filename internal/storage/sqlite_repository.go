package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/sandeepkv93/tempo/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

const taskColumns = `id, parent_id, title, status, critical, start_date, due_date, start_time, end_time,
	time_estimate, energy_level, my_day_date, recurrence_type, recurrence_count, recurrence_end_date,
	created_at, completed_at`

type SQLiteRepository struct {
	db    *sql.DB
	now   func() time.Time
	newID func() string
}

type execQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db, now: time.Now, newID: uuid.NewString}, nil
}

// OpenSQLite opens path, applies pending migrations and returns a repository.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// DSN enables foreign keys on every pooled connection, not just the first.
func DSN(path string) string {
	if strings.Contains(path, "?") {
		return path + "&_foreign_keys=on"
	}
	return path + "?_foreign_keys=on"
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateTask(ctx context.Context, in model.Task) (model.Task, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Task{}, err
	}
	out, err := r.insertTask(ctx, tx, in)
	if err != nil {
		_ = tx.Rollback()
		return model.Task{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Task{}, err
	}
	return out, nil
}

// CreateTasks inserts a batch in one transaction; either every task is
// stored or none is.
func (r *SQLiteRepository) CreateTasks(ctx context.Context, in []model.Task) ([]model.Task, error) {
	if len(in) == 0 {
		return []model.Task{}, nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	out := make([]model.Task, 0, len(in))
	for _, t := range in {
		created, insertErr := r.insertTask(ctx, tx, t)
		if insertErr != nil {
			_ = tx.Rollback()
			return nil, insertErr
		}
		out = append(out, created)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SQLiteRepository) insertTask(ctx context.Context, q execQuerier, in model.Task) (model.Task, error) {
	out := in.Clone()
	if out.ID == "" {
		out.ID = r.newID()
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = r.now().UTC()
	}
	row := rowFromModel(out)
	_, err := q.ExecContext(ctx, `INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.ID, row.ParentID, row.Title, row.Status, row.Critical, row.StartDate, row.DueDate, row.StartTime, row.EndTime,
		row.TimeEstimate, row.EnergyLevel, row.MyDayDate, row.RecurrenceType, row.RecurrenceCount, row.RecurrenceEndDate,
		row.CreatedAt, row.CompletedAt,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("insert task %s: %w", out.ID, err)
	}
	if err := insertDependencies(ctx, q, out.ID, out.Dependencies); err != nil {
		return model.Task{}, err
	}
	return out, nil
}

func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (model.Task, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	if err != nil {
		return model.Task{}, err
	}
	tasks, err := collectTasks(rows)
	if err != nil {
		return model.Task{}, err
	}
	if len(tasks) == 0 {
		return model.Task{}, ErrNotFound
	}
	if err := r.attachDependencies(ctx, tasks); err != nil {
		return model.Task{}, err
	}
	return tasks[0], nil
}

// UpdateTask rewrites every column and replaces the dependency set.
func (r *SQLiteRepository) UpdateTask(ctx context.Context, in model.Task) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	row := rowFromModel(in)
	res, err := tx.ExecContext(ctx, `
		UPDATE tasks
		SET parent_id = ?, title = ?, status = ?, critical = ?, start_date = ?, due_date = ?, start_time = ?, end_time = ?,
			time_estimate = ?, energy_level = ?, my_day_date = ?, recurrence_type = ?, recurrence_count = ?,
			recurrence_end_date = ?, completed_at = ?
		WHERE id = ?`,
		row.ParentID, row.Title, row.Status, row.Critical, row.StartDate, row.DueDate, row.StartTime, row.EndTime,
		row.TimeEstimate, row.EnergyLevel, row.MyDayDate, row.RecurrenceType, row.RecurrenceCount,
		row.RecurrenceEndDate, row.CompletedAt, in.ID,
	)
	if err == nil {
		err = checkRowsAffected(res)
	}
	if err == nil {
		_, err = tx.ExecContext(ctx, `DELETE FROM task_dependencies WHERE task_id = ?`, in.ID)
	}
	if err == nil {
		err = insertDependencies(ctx, tx, in.ID, in.Dependencies)
	}
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// UpdateFields writes only the columns set in patch.
func (r *SQLiteRepository) UpdateFields(ctx context.Context, id string, patch model.TaskPatch) error {
	if patch.IsEmpty() {
		return ErrEmptyPatch
	}
	sets := make([]string, 0, 8)
	args := make([]any, 0, 9)
	add := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}
	if patch.Status.Set {
		add("status", string(patch.Status.Value))
	}
	if patch.StartDate.Set {
		add("start_date", nullDate(patch.StartDate.Value))
	}
	if patch.DueDate.Set {
		add("due_date", nullDate(patch.DueDate.Value))
	}
	if patch.StartTime.Set {
		add("start_time", patch.StartTime.Value)
	}
	if patch.EndTime.Set {
		add("end_time", patch.EndTime.Value)
	}
	if patch.TimeEstimate.Set {
		var v any
		if patch.TimeEstimate.Value != nil {
			v = *patch.TimeEstimate.Value
		}
		add("time_estimate", v)
	}
	if patch.MyDayDate.Set {
		add("my_day_date", nullDate(patch.MyDayDate.Value))
	}
	if patch.CompletedAt.Set {
		add("completed_at", nullTime(patch.CompletedAt.Value))
	}
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, `UPDATE tasks SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteTask(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListTasks(ctx context.Context, filter TaskListFilter) ([]model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks`
	clauses := make([]string, 0, 3)
	args := make([]any, 0, 5)
	if filter.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.ExcludeDone {
		clauses = append(clauses, "status <> ?")
		args = append(args, string(model.StatusDone))
	}
	if filter.ParentID != "" {
		clauses = append(clauses, "parent_id = ?")
		args = append(args, filter.ParentID)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY created_at ASC, id ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	tasks, err := collectTasks(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachDependencies(ctx, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *SQLiteRepository) AddDependency(ctx context.Context, taskID, dependsOnID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO task_dependencies (task_id, depends_on_id) VALUES (?, ?)`, taskID, dependsOnID)
	return err
}

func (r *SQLiteRepository) RemoveDependency(ctx context.Context, taskID, dependsOnID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM task_dependencies WHERE task_id = ? AND depends_on_id = ?`, taskID, dependsOnID)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func insertDependencies(ctx context.Context, q execQuerier, taskID string, deps []string) error {
	for _, dep := range deps {
		if _, err := q.ExecContext(ctx, `
			INSERT OR IGNORE INTO task_dependencies (task_id, depends_on_id) VALUES (?, ?)`, taskID, dep); err != nil {
			return fmt.Errorf("insert dependency %s -> %s: %w", taskID, dep, err)
		}
	}
	return nil
}

func (r *SQLiteRepository) attachDependencies(ctx context.Context, tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	index := make(map[string]int, len(tasks))
	placeholders := make([]string, 0, len(tasks))
	args := make([]any, 0, len(tasks))
	for i, t := range tasks {
		index[t.ID] = i
		placeholders = append(placeholders, "?")
		args = append(args, t.ID)
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT task_id, depends_on_id FROM task_dependencies
		WHERE task_id IN (`+strings.Join(placeholders, ", ")+`)
		ORDER BY task_id, depends_on_id`, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var taskID, dep string
		if err := rows.Scan(&taskID, &dep); err != nil {
			return err
		}
		i := index[taskID]
		tasks[i].Dependencies = append(tasks[i].Dependencies, dep)
	}
	return rows.Err()
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	}
	if offset > 0 {
		if limit <= 0 {
			sql += " LIMIT -1"
		}
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (model.Task, error) {
	var row taskRow
	if err := s.Scan(
		&row.ID, &row.ParentID, &row.Title, &row.Status, &row.Critical, &row.StartDate, &row.DueDate,
		&row.StartTime, &row.EndTime, &row.TimeEstimate, &row.EnergyLevel, &row.MyDayDate,
		&row.RecurrenceType, &row.RecurrenceCount, &row.RecurrenceEndDate, &row.CreatedAt, &row.CompletedAt,
	); err != nil {
		return model.Task{}, err
	}
	return row.toModel()
}

func collectTasks(rows *sql.Rows) ([]model.Task, error) {
	defer rows.Close()
	out := make([]model.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
