package pagination

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 25
	// MaxLimit caps how many rows any listing can request.
	MaxLimit = 100
)

// Params holds offset pagination inputs from controllers.
type Params struct {
	Limit  int
	Offset int
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// NormalizeOffset clamps negative offsets to zero.
func NormalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

// Page slices an already-fetched set. A non-positive limit means no cap: the
// admin event log is fetched whole from the upstream (it exposes no paging
// parameters), paging is presentation only, and the default view shows the
// full set.
func Page[T any](rows []T, p Params) []T {
	offset := NormalizeOffset(p.Offset)
	if offset >= len(rows) {
		return []T{}
	}
	rows = rows[offset:]
	if p.Limit > 0 && p.Limit < len(rows) {
		rows = rows[:p.Limit]
	}
	return rows
}
