package mode

// Mode controls how the remote index combines search terms.
type Mode string

// Match modes.
const (
	// All requires every term to match, so negation and boolean operators
	// narrow results instead of widening them.
	All Mode = "all"
	// Any matches documents containing at least one term.
	Any Mode = "any"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == All || m == Any
}
