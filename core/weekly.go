package core

import (
	"fmt"
	"strconv"
	"strings"
)

// WeeklyWindow is the number of rolling recurrence buckets (W-6 .. W-1).
const WeeklyWindow = 6

// WeeklyRecurrence is the 6-week rolling recurrence window for one concern.
// Index 0 holds W-6 (the oldest week), index 5 holds W-1 (last week).
type WeeklyRecurrence [WeeklyWindow]int

// Total returns the summed recurrence across the whole window.
func (w WeeklyRecurrence) Total() int {
	total := 0
	for _, count := range w {
		total += count
	}
	return total
}

// HasRecurrence reports whether any week in the window saw a defect.
func (w WeeklyRecurrence) HasRecurrence() bool {
	for _, count := range w {
		if count > 0 {
			return true
		}
	}
	return false
}

// Shift advances the window by one week: W-6 is dropped, every bucket moves
// one slot older, and W-1 starts empty.
func (w WeeklyRecurrence) Shift() WeeklyRecurrence {
	var shifted WeeklyRecurrence
	copy(shifted[:WeeklyWindow-1], w[1:])
	return shifted
}

// List returns the window as a slice ordered oldest first.
func (w WeeklyRecurrence) List() []int {
	out := make([]int, WeeklyWindow)
	copy(out, w[:])
	return out
}

// WeeklyFromList builds a window from up to six values ordered oldest first.
// Shorter inputs are padded with empty recent weeks; longer inputs are truncated.
func WeeklyFromList(values []int) WeeklyRecurrence {
	var w WeeklyRecurrence
	copy(w[:], values)
	return w
}

// String renders the window as a bracketed list, e.g. "[0, 1, 0, 0, 2, 3]".
// The output round-trips through ParseWeeklyList.
func (w WeeklyRecurrence) String() string {
	parts := make([]string, WeeklyWindow)
	for i, count := range w {
		parts[i] = strconv.Itoa(count)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ParseWeeklyList decodes a serialized weekly recurrence list such as
// "[0, 1, 0, 0, 2, 3]". The parser is strict: input must be a bracketed list
// of one to six non-negative integers. Anything else is rejected with
// ErrInvalidWeeklyList rather than being interpreted loosely.
func ParseWeeklyList(s string) (WeeklyRecurrence, error) {
	var w WeeklyRecurrence

	trimmed := strings.TrimSpace(s)
	if len(trimmed) < 2 || trimmed[0] != '[' || trimmed[len(trimmed)-1] != ']' {
		return w, fmt.Errorf("%w: %q", ErrInvalidWeeklyList, s)
	}

	inner := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
	if inner == "" {
		return w, nil
	}

	parts := strings.Split(inner, ",")
	if len(parts) > WeeklyWindow {
		return w, fmt.Errorf("%w: %d values, want at most %d", ErrInvalidWeeklyList, len(parts), WeeklyWindow)
	}

	for i, part := range parts {
		count, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return WeeklyRecurrence{}, fmt.Errorf("%w: %q is not an integer", ErrInvalidWeeklyList, strings.TrimSpace(part))
		}
		if count < 0 {
			return WeeklyRecurrence{}, fmt.Errorf("%w: negative count %d", ErrInvalidWeeklyList, count)
		}
		w[i] = count
	}

	return w, nil
}
