package nn

import (
	"encoding/json"
	"fmt"
)

// Dim2 is a per-axis pair (width, height) for kernel sizes and strides.
//
// In JSON configs a Dim2 decodes from either a single number, meaning a
// square value, or a [width, height] pair:
//
//	{"kernel": 3, "stride": [2, 1]}
type Dim2 struct {
	W int
	H int
}

// Square returns a Dim2 with both axes set to n.
func Square(n int) Dim2 {
	return Dim2{W: n, H: n}
}

// UnmarshalJSON decodes a number as a square value or a two-element array
// as a (width, height) pair.
func (d *Dim2) UnmarshalJSON(data []byte) error {
	var square int
	if err := json.Unmarshal(data, &square); err == nil {
		*d = Square(square)
		return nil
	}

	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("expected int or [width, height] pair: %w", err)
	}
	*d = Dim2{W: pair[0], H: pair[1]}
	return nil
}

// MarshalJSON encodes a square Dim2 as a number, anything else as a pair.
func (d Dim2) MarshalJSON() ([]byte, error) {
	if d.W == d.H {
		return json.Marshal(d.W)
	}
	return json.Marshal([2]int{d.W, d.H})
}

// FilterSpec declares one convolutional layer of a conv block: the number
// of output filters, the kernel size and the stride.
type FilterSpec struct {
	Filters int  `json:"filters"`
	Kernel  Dim2 `json:"kernel"`
	Stride  Dim2 `json:"stride"`
}

// validate checks the spec for layer index i of a block.
func (s FilterSpec) validate(i int) error {
	if s.Filters <= 0 {
		return fmt.Errorf("%w: filter spec %d: filters must be > 0, got %d", ErrInvalidConfig, i, s.Filters)
	}
	if s.Kernel.W <= 0 || s.Kernel.H <= 0 {
		return fmt.Errorf("%w: filter spec %d: kernel must be positive, got %dx%d", ErrInvalidConfig, i, s.Kernel.W, s.Kernel.H)
	}
	if s.Stride.W <= 0 || s.Stride.H <= 0 {
		return fmt.Errorf("%w: filter spec %d: stride must be positive, got %dx%d", ErrInvalidConfig, i, s.Stride.W, s.Stride.H)
	}
	return nil
}

// BoolPtr returns a pointer to v, for the optional bool fields of block
// configs (nil keeps the default).
func BoolPtr(v bool) *bool {
	return &v
}
