package views

import (
	"strings"
	"testing"
)

func TestRenderMyDayPanelSplitsFocusAndRecommended(t *testing.T) {
	out := RenderMyDayPanel(MyDayPanelData{
		Date: "2025-06-10",
		Items: []FeedItemData{
			{ID: "a", Title: "file taxes", Urgency: "today", InFocus: true, When: "09:00"},
			{ID: "b", Title: "call mom", Urgency: "soon", Reason: "due soon"},
			{ID: "c", Title: "refactor", Reason: "ready to start", Blocked: true},
		},
		SelectedID: "b",
	})

	focus := strings.Index(out, "Focus:")
	recommended := strings.Index(out, "Recommended:")
	if focus < 0 || recommended < focus {
		t.Fatalf("expected focus before recommended:\n%s", out)
	}
	for _, want := range []string{
		"[today] file taxes @09:00",
		"> [soon] call mom - due soon",
		"refactor (blocked) - ready to start",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderMyDayPanelEmptySections(t *testing.T) {
	out := RenderMyDayPanel(MyDayPanelData{Date: "2025-06-10"})
	if strings.Count(out, "(none)") != 2 {
		t.Fatalf("expected both sections empty:\n%s", out)
	}
}

func TestUrgencyBadge(t *testing.T) {
	cases := map[string]string{"overdue": "[overdue]", "today": "[today]", "soon": "[soon]", "later": "[ ]", "": "[ ]"}
	for in, want := range cases {
		if got := UrgencyBadge(in); !strings.Contains(got, want) {
			t.Fatalf("UrgencyBadge(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRenderPlanPanel(t *testing.T) {
	editing := RenderPlanPanel(PlanPanelData{Editing: true, BudgetView: "240"})
	if !strings.Contains(editing, "budget: 240") || strings.Contains(editing, "planned") {
		t.Fatalf("unexpected editor:\n%s", editing)
	}

	out := RenderPlanPanel(PlanPanelData{
		Budget: 120,
		Total:  90,
		Cursor: 1,
		Items: []PlanItemData{
			{Title: "write report", Minutes: 60, Score: 70},
			{Title: "inbox zero", Minutes: 30, Score: 40},
		},
	})
	for _, want := range []string{
		"budget: 120m | planned: 90m | left: 30m",
		"  1. write report [60m, score 70]",
		"> 2. inbox zero [30m, score 40]",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}

	empty := RenderPlanPanel(PlanPanelData{Budget: 15})
	if !strings.Contains(empty, "no tasks fit the budget") {
		t.Fatalf("unexpected empty plan:\n%s", empty)
	}
}

func TestRenderCalendarPanelCells(t *testing.T) {
	out := RenderCalendarPanel(CalendarPanelData{
		Week: "2025-06-09 .. 2025-06-15",
		Mode: "browse",
		Days: []string{"Mon 09", "Tue 10"},
		Rows: []CalendarRowData{
			{Time: "09:00", Cells: []CalendarCellData{{Label: "standup", Overlap: true}, {Drop: true}}},
			{Time: "09:30", Cells: []CalendarCellData{{Label: "|", Resizing: true}, {}}},
		},
		Conflicts: []string{"Mon 09: standup / review"},
	})
	for _, want := range []string{
		"calendar: 2025-06-09 .. 2025-06-15 | browse",
		"09:00 !standup  [drop]",
		"09:30 ~|        .",
		"! overlap: Mon 09: standup / review",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestTruncateAndPad(t *testing.T) {
	if got := truncate("quarterly review", 9); got != "quarterl…" {
		t.Fatalf("truncate = %q", got)
	}
	if got := pad("ab", 4); got != "ab  " {
		t.Fatalf("pad = %q", got)
	}
	if got := RenderCommandPalette(false, "add"); got != "" {
		t.Fatalf("inactive palette should render nothing, got %q", got)
	}
}
