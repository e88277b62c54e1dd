package intervalset

import (
	"errors"
	"fmt"
)

// ErrInvalidFormat is returned by Parse, ParseBound and the decoders for
// malformed input or bounds outside the sentinels.
var ErrInvalidFormat = errors.New("invalid interval set format")

var errBrokenInvariant = errors.New("broken interval set invariant")

func errInvariant(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBrokenInvariant, fmt.Sprintf(format, args...))
}
