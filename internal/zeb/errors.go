package zeb

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrInvalidParameter indicates a planning parameter that could not be parsed.
// Numeric edge cases such as a zero offset period are not errors; they
// produce IEEE-754 infinities or NaN in the result.
const ErrInvalidParameter = constError("invalid parameter")
