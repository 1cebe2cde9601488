package usecase

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Page clamps list parameters to the service bounds.
func Page(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
