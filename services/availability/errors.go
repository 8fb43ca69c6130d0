package availability

import (
	"errors"
	"fmt"
)

// ErrInvalidRequest marks malformed availability queries (bad date format,
// missing service id). Zero slots is NOT an error; callers must be able to
// tell an empty day apart from a rejected request.
var ErrInvalidRequest = errors.New("invalid availability request")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}
