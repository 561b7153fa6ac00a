package review

// NextPending returns the index of the nearest pending hunk after from,
// wrapping past the end of the list. The hunk at from itself is never
// returned, so advancing after a resolution lands on the next unresolved
// change. Pass from = -1 to scan the whole list from the top. Returns -1
// when no pending hunk exists.
func NextPending(hunks []Hunk, from int) int {
	n := len(hunks)
	if n == 0 {
		return -1
	}
	for off := 1; off <= n; off++ {
		i := ((from+off)%n + n) % n
		if i == from {
			continue
		}
		if hunks[i].Status == StatusPending {
			return i
		}
	}
	return -1
}

// PrevPending is the backward counterpart of NextPending: nearest pending
// hunk before from, wrapping past the start. Pass from = -1 to scan from
// the bottom.
func PrevPending(hunks []Hunk, from int) int {
	n := len(hunks)
	if n == 0 {
		return -1
	}
	start := from
	if start < 0 {
		start = n
	}
	for off := 1; off <= n; off++ {
		i := ((start-off)%n + n) % n
		if i == from {
			continue
		}
		if hunks[i].Status == StatusPending {
			return i
		}
	}
	return -1
}
