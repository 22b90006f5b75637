package particle

import "errors"

// ErrSettings reports conversion settings outside the accepted ranges.
var ErrSettings = errors.New("invalid settings")
