package availability

import "errors"

// ErrInvalidConfig is returned by NewPolicy for an invalid configuration
var ErrInvalidConfig = errors.New("availability: invalid config")
