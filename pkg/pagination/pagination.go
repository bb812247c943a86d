package pagination

const (
	// DefaultPage is the page used when the caller does not supply one.
	DefaultPage = 1
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 10
	// MaxLimit caps how many rows any page query can request.
	MaxLimit = 100
)

// Params holds offset pagination inputs from controllers or services.
type Params struct {
	Page  int
	Limit int
}

// Normalize applies defaults and the configured maximum. Negative and zero
// values fall back to defaults; callers reject malformed input before this
// point, so Normalize never errors.
func Normalize(p Params) Params {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset converts the normalized page into a row offset.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}
