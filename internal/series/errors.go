package series

import "fmt"

// RowError locates a load failure in the input.
type RowError struct {
	Line   int
	Err    error
	Detail string
}

func (e *RowError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: %v: %s", e.Line, e.Err, e.Detail)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
