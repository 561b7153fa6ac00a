package review

import "testing"

func hunksWithStatuses(statuses ...Status) []Hunk {
	hunks := make([]Hunk, len(statuses))
	for i, st := range statuses {
		hunks[i] = Hunk{ID: i + 1, Status: st}
	}
	return hunks
}

func TestNextPending(t *testing.T) {
	mixed := hunksWithStatuses(
		StatusPending, StatusAccepted, StatusPending, StatusRejected, StatusPending,
	)
	resolved := hunksWithStatuses(StatusAccepted, StatusRejected)

	tests := []struct {
		name  string
		hunks []Hunk
		from  int
		want  int
	}{
		{"forward to next pending", mixed, 3, 4},
		{"wraps past the end", mixed, 4, 0},
		{"skips resolved", mixed, 0, 2},
		{"from unset index scans from top", mixed, -1, 0},
		{"all resolved", resolved, 0, -1},
		{"all resolved from unset", resolved, -1, -1},
		{"empty list", nil, 0, -1},
		{"sole pending is excluded", hunksWithStatuses(StatusPending), 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextPending(tt.hunks, tt.from); got != tt.want {
				t.Errorf("NextPending(from=%d) = %d, want %d", tt.from, got, tt.want)
			}
		})
	}
}

func TestPrevPending(t *testing.T) {
	mixed := hunksWithStatuses(
		StatusPending, StatusAccepted, StatusPending, StatusRejected, StatusPending,
	)

	tests := []struct {
		name  string
		hunks []Hunk
		from  int
		want  int
	}{
		{"backward to prev pending", mixed, 3, 2},
		{"wraps past the start", mixed, 0, 4},
		{"skips resolved", mixed, 4, 2},
		{"from unset index scans from bottom", mixed, -1, 4},
		{"all resolved", hunksWithStatuses(StatusAccepted), 0, -1},
		{"empty list", nil, -1, -1},
		{"sole pending is excluded", hunksWithStatuses(StatusPending), 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PrevPending(tt.hunks, tt.from); got != tt.want {
				t.Errorf("PrevPending(from=%d) = %d, want %d", tt.from, got, tt.want)
			}
		})
	}
}

func TestNavigatorsDoNotMutate(t *testing.T) {
	hunks := hunksWithStatuses(StatusPending, StatusAccepted, StatusPending)
	NextPending(hunks, 0)
	PrevPending(hunks, 2)
	for i, want := range []Status{StatusPending, StatusAccepted, StatusPending} {
		if hunks[i].Status != want {
			t.Errorf("hunk %d status mutated to %v", i, hunks[i].Status)
		}
	}
}
