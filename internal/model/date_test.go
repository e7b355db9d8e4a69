package model

import (
	"errors"
	"testing"
	"time"
)

func TestDateArithmetic(t *testing.T) {
	d := NewDate(2025, 1, 31)
	if got := d.AddMonths(1).String(); got != "2025-03-03" {
		t.Fatalf("AddMonths overflow = %s", got)
	}
	if got := d.AddDays(1).String(); got != "2025-02-01" {
		t.Fatalf("AddDays = %s", got)
	}
	if n := NewDate(2025, 6, 10).DaysUntil(NewDate(2025, 6, 13)); n != 3 {
		t.Fatalf("DaysUntil = %d", n)
	}
	if n := NewDate(2025, 6, 13).DaysUntil(NewDate(2025, 6, 10)); n != -3 {
		t.Fatalf("DaysUntil negative = %d", n)
	}
	if NewDate(2025, 6, 10).Weekday() != time.Tuesday {
		t.Fatal("2025-06-10 should be a Tuesday")
	}
}

func TestDateCompare(t *testing.T) {
	a := NewDate(2025, 6, 10)
	b := NewDate(2025, 7, 1)
	if !a.Before(b) || !b.After(a) || a.Equal(b) || !a.Equal(NewDate(2025, 6, 10)) {
		t.Fatal("comparison mismatch")
	}
}

func TestParseISODate(t *testing.T) {
	d, err := ParseISODate("2025-12-25")
	if err != nil || d != NewDate(2025, 12, 25) {
		t.Fatalf("ParseISODate = %v, %v", d, err)
	}
	if _, err := ParseISODate("2025-02-30"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if (Date{}).String() != "" || !(Date{}).IsZero() {
		t.Fatal("zero date should render empty")
	}
}
