package nn

import "errors"

// ErrInvalidConfig marks a block configuration rejected at construction:
// non-positive dimensions, empty pipelines, unknown activation names.
// Construction never partially succeeds; a block either builds its whole
// pipeline or returns an error wrapping this sentinel.
var ErrInvalidConfig = errors.New("invalid configuration")
