package update

import "github.com/sandeepkv93/tempo/internal/model"

// clamp keeps a cursor inside a list of n items.
func clamp(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}

// weekdayIndex maps a date onto the Monday-first week grid.
func weekdayIndex(d model.Date) int {
	return (int(d.Weekday()) + 6) % 7
}

var weekdayShort = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func shortDay(d model.Date) string {
	return weekdayShort[weekdayIndex(d)] + " " + d.Time().Format("02")
}
