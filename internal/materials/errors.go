package materials

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors for material table handling, comparable with errors.Is().
var (
	// ErrInvalidTable indicates a table with no materials or a negative factor.
	ErrInvalidTable = constError("invalid material table")

	// ErrUnsupportedVersion indicates a table file whose schema version is
	// missing, malformed, or outside SupportedVersions.
	ErrUnsupportedVersion = constError("unsupported material table version")
)
