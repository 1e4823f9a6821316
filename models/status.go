package models

// Status is the per-day attendance state of a member.
type Status string

const (
	StatusUnmarked Status = "unmarked"
	StatusPresent  Status = "present"
	StatusAbsent   Status = "absent"
	StatusArriving Status = "arriving"
	StatusLeaving  Status = "leaving"
	StatusCounted  Status = "counted"
)

// AllStatuses in display order.
var AllStatuses = []Status{
	StatusUnmarked,
	StatusPresent,
	StatusAbsent,
	StatusArriving,
	StatusLeaving,
	StatusCounted,
}

// statusTransitions maps the previous day's status to the statuses allowed
// for the day. Order matters: CycleNext walks each list front to back and
// wraps. Before a member has arrived (or after they left) only unmarked and
// arriving are reachable; once on base any on-roster status may follow.
var statusTransitions = map[Status][]Status{
	StatusUnmarked: {StatusUnmarked, StatusArriving},
	StatusArriving: {StatusUnmarked, StatusPresent, StatusCounted, StatusLeaving, StatusAbsent},
	StatusPresent:  {StatusUnmarked, StatusPresent, StatusCounted, StatusLeaving, StatusAbsent},
	StatusCounted:  {StatusUnmarked, StatusPresent, StatusCounted, StatusLeaving, StatusAbsent},
	StatusAbsent:   {StatusUnmarked, StatusPresent, StatusCounted, StatusLeaving, StatusAbsent},
	StatusLeaving:  {StatusUnmarked, StatusArriving},
}

// ValidStatus reports whether s is a known status value.
func ValidStatus(s Status) bool {
	_, ok := statusTransitions[s]
	return ok
}

// AllowedAfter returns the statuses a day may take given the previous day's
// status. An unknown (or empty) previous status behaves like unmarked, which
// is also the first-day rule: the first day of the range allows only
// unmarked and arriving.
func AllowedAfter(prev Status) []Status {
	allowed, ok := statusTransitions[prev]
	if !ok {
		allowed = statusTransitions[StatusUnmarked]
	}
	out := make([]Status, len(allowed))
	copy(out, allowed)
	return out
}

// CanFollow reports whether next is allowed on a day whose previous day
// holds prev.
func CanFollow(prev, next Status) bool {
	for _, s := range AllowedAfter(prev) {
		if s == next {
			return true
		}
	}
	return false
}

// CycleNext returns the status a cell advances to when clicked: the entry
// after current in the allowed list for prev, wrapping at the end. A current
// status not in the list restarts the cycle at the first entry.
func CycleNext(prev, current Status) Status {
	allowed := AllowedAfter(prev)
	for i, s := range allowed {
		if s == current {
			return allowed[(i+1)%len(allowed)]
		}
	}
	return allowed[0]
}
