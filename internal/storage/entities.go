package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/sandeepkv93/tempo/internal/model"
)

type TaskListFilter struct {
	Status      model.Status
	ExcludeDone bool
	ParentID    string
	Limit       int
	Offset      int
}

// taskRow mirrors one row of the tasks table.
type taskRow struct {
	ID                string
	ParentID          string
	Title             string
	Status            string
	Critical          int
	StartDate         sql.NullString
	DueDate           sql.NullString
	StartTime         string
	EndTime           string
	TimeEstimate      sql.NullInt64
	EnergyLevel       string
	MyDayDate         sql.NullString
	RecurrenceType    string
	RecurrenceCount   int
	RecurrenceEndDate sql.NullString
	CreatedAt         string
	CompletedAt       sql.NullString
}

func (r taskRow) toModel() (model.Task, error) {
	out := model.Task{
		ID:              r.ID,
		ParentID:        r.ParentID,
		Title:           r.Title,
		Status:          model.Status(r.Status),
		Critical:        r.Critical == 1,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		EnergyLevel:     model.Energy(r.EnergyLevel),
		RecurrenceType:  model.Cadence(r.RecurrenceType),
		RecurrenceCount: r.RecurrenceCount,
	}
	var err error
	if out.StartDate, err = parseNullableDate(r.StartDate); err != nil {
		return model.Task{}, fmt.Errorf("start_date: %w", err)
	}
	if out.DueDate, err = parseNullableDate(r.DueDate); err != nil {
		return model.Task{}, fmt.Errorf("due_date: %w", err)
	}
	if out.MyDayDate, err = parseNullableDate(r.MyDayDate); err != nil {
		return model.Task{}, fmt.Errorf("my_day_date: %w", err)
	}
	if out.RecurrenceEndDate, err = parseNullableDate(r.RecurrenceEndDate); err != nil {
		return model.Task{}, fmt.Errorf("recurrence_end_date: %w", err)
	}
	if r.TimeEstimate.Valid {
		v := int(r.TimeEstimate.Int64)
		out.TimeEstimate = &v
	}
	if out.CreatedAt, err = parseRequiredTime(r.CreatedAt); err != nil {
		return model.Task{}, fmt.Errorf("created_at: %w", err)
	}
	if out.CompletedAt, err = parseNullableTime(r.CompletedAt); err != nil {
		return model.Task{}, fmt.Errorf("completed_at: %w", err)
	}
	return out, nil
}

func rowFromModel(t model.Task) taskRow {
	row := taskRow{
		ID:                t.ID,
		ParentID:          t.ParentID,
		Title:             t.Title,
		Status:            string(t.Status),
		Critical:          boolInt(t.Critical),
		StartDate:         nullDate(t.StartDate),
		DueDate:           nullDate(t.DueDate),
		StartTime:         t.StartTime,
		EndTime:           t.EndTime,
		EnergyLevel:       string(t.EnergyLevel),
		MyDayDate:         nullDate(t.MyDayDate),
		RecurrenceType:    string(t.RecurrenceType),
		RecurrenceCount:   t.RecurrenceCount,
		RecurrenceEndDate: nullDate(t.RecurrenceEndDate),
		CreatedAt:         mustTime(t.CreatedAt),
	}
	if t.TimeEstimate != nil {
		row.TimeEstimate = sql.NullInt64{Int64: int64(*t.TimeEstimate), Valid: true}
	}
	if t.CompletedAt != nil {
		row.CompletedAt = sql.NullString{String: mustTime(*t.CompletedAt), Valid: true}
	}
	return row
}

func nullDate(d *model.Date) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func parseNullableDate(v sql.NullString) (*model.Date, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	d, err := model.ParseISODate(v.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC().Format(sqliteTimeLayout)
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(sqliteTimeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
