package model

import (
	"testing"
)

func dateStrings(ds []Date) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.String())
	}
	return out
}

func TestFutureOccurrencesWeekly(t *testing.T) {
	got := dateStrings(FutureOccurrences(NewDate(2025, 6, 1), CadenceWeekly, 3, nil))
	want := []string{"2025-06-08", "2025-06-15", "2025-06-22"}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("occurrence[%d] got %s want %s", i, got[i], want[i])
		}
	}
}

func TestFutureOccurrencesEndDateWinsOverCount(t *testing.T) {
	end := NewDate(2025, 6, 5)
	got := FutureOccurrences(NewDate(2025, 6, 1), CadenceDaily, 100, &end)
	if len(got) != 4 || got[3].String() != "2025-06-05" {
		t.Fatalf("unexpected occurrences: %v", dateStrings(got))
	}
}

func TestFutureOccurrencesMonthlyAndBiweekly(t *testing.T) {
	monthly := dateStrings(FutureOccurrences(NewDate(2025, 1, 15), CadenceMonthly, 2, nil))
	if monthly[0] != "2025-02-15" || monthly[1] != "2025-03-15" {
		t.Fatalf("unexpected monthly: %v", monthly)
	}
	biweekly := dateStrings(FutureOccurrences(NewDate(2025, 6, 1), CadenceBiweekly, 2, nil))
	if biweekly[0] != "2025-06-15" || biweekly[1] != "2025-06-29" {
		t.Fatalf("unexpected biweekly: %v", biweekly)
	}
}

func TestFutureOccurrencesCapTruncates(t *testing.T) {
	got := FutureOccurrences(NewDate(2025, 1, 1), CadenceDaily, 1000, nil)
	if len(got) != MaxRecurrenceSteps {
		t.Fatalf("expected truncation at %d, got %d", MaxRecurrenceSteps, len(got))
	}
	far := NewDate(2100, 1, 1)
	got = FutureOccurrences(NewDate(2025, 1, 1), CadenceDaily, 0, &far)
	if len(got) != MaxRecurrenceSteps {
		t.Fatalf("expected end-date expansion truncated at cap, got %d", len(got))
	}
}

func TestFutureOccurrencesNoCadence(t *testing.T) {
	if got := FutureOccurrences(NewDate(2025, 1, 1), CadenceNone, 5, nil); len(got) != 0 {
		t.Fatalf("expected no occurrences, got %v", dateStrings(got))
	}
}

func TestNextOccurrenceStrictlyAfterToday(t *testing.T) {
	today := NewDate(2025, 6, 10)
	cases := []struct {
		anchor  Date
		cadence Cadence
		want    string
	}{
		{NewDate(2025, 6, 1), CadenceDaily, "2025-06-11"},
		{NewDate(2025, 6, 3), CadenceWeekly, "2025-06-17"},
		{NewDate(2025, 6, 10), CadenceWeekly, "2025-06-17"},
		{NewDate(2025, 5, 27), CadenceBiweekly, "2025-06-24"},
		{NewDate(2025, 4, 10), CadenceMonthly, "2025-07-10"},
		{NewDate(2025, 7, 1), CadenceDaily, "2025-07-02"},
	}
	for _, tc := range cases {
		got := NextOccurrence(tc.anchor, tc.cadence, today)
		if got.String() != tc.want {
			t.Fatalf("NextOccurrence(%s, %s) = %s, want %s", tc.anchor, tc.cadence, got, tc.want)
		}
		if !got.After(today) {
			t.Fatalf("NextOccurrence returned %s which is not after %s", got, today)
		}
	}
}

func TestNextOccurrenceCapIsSilent(t *testing.T) {
	got := NextOccurrence(NewDate(2000, 1, 1), CadenceDaily, NewDate(2025, 1, 1))
	want := NewDate(2000, 1, 1).AddDays(MaxRecurrenceSteps)
	if !got.Equal(want) {
		t.Fatalf("expected last computed date %s, got %s", want, got)
	}
}

func TestRRuleMatchesExpander(t *testing.T) {
	anchor := NewDate(2025, 6, 1)
	for _, c := range []Cadence{CadenceDaily, CadenceWeekly, CadenceBiweekly} {
		rule, err := c.RRule(anchor, 4, nil)
		if err != nil {
			t.Fatalf("rrule for %s: %v", c, err)
		}
		all := rule.All()
		want := FutureOccurrences(anchor, c, 4, nil)
		if len(all) != len(want)+1 {
			t.Fatalf("%s: rrule produced %d instances, want %d", c, len(all), len(want)+1)
		}
		for i, d := range want {
			if got := DateOf(all[i+1]); !got.Equal(d) {
				t.Fatalf("%s[%d]: rrule %s, expander %s", c, i, got, d)
			}
		}
	}
	if _, err := CadenceNone.RRule(anchor, 1, nil); err == nil {
		t.Fatal("expected error for empty cadence")
	}
}
