package tensor

import (
	"testing"
)

func TestShape_NumElements(t *testing.T) {
	tests := []struct {
		shape    Shape
		expected int
	}{
		{Shape{}, 1},
		{Shape{5}, 5},
		{Shape{2, 3}, 6},
		{Shape{2, 3, 4}, 24},
	}

	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.expected {
			t.Errorf("NumElements(%v): expected %d, got %d", tt.shape, tt.expected, got)
		}
	}
}

func TestShape_Validate(t *testing.T) {
	if err := (Shape{2, 3}).Validate(); err != nil {
		t.Errorf("Validate({2,3}): unexpected error %v", err)
	}
	if err := (Shape{2, 0}).Validate(); err == nil {
		t.Error("Validate({2,0}): expected error")
	}
	if err := (Shape{-1, 3}).Validate(); err == nil {
		t.Error("Validate({-1,3}): expected error")
	}
}

func TestShape_ComputeStrides(t *testing.T) {
	strides := Shape{2, 3, 4}.ComputeStrides()
	expected := []int{12, 4, 1}
	for i := range expected {
		if strides[i] != expected[i] {
			t.Errorf("ComputeStrides({2,3,4}): expected %v, got %v", expected, strides)
			break
		}
	}
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		a, b     Shape
		expected Shape
		expanded bool
		ok       bool
	}{
		{Shape{3, 5}, Shape{3, 5}, Shape{3, 5}, false, true},
		{Shape{3, 1}, Shape{3, 5}, Shape{3, 5}, true, true},
		{Shape{5}, Shape{3, 5}, Shape{3, 5}, true, true},
		{Shape{4}, Shape{2, 8, 8, 4}, Shape{2, 8, 8, 4}, true, true},
		{Shape{3, 4}, Shape{3, 5}, nil, false, false},
	}

	for _, tt := range tests {
		result, expanded, err := BroadcastShapes(tt.a, tt.b)
		if tt.ok {
			if err != nil {
				t.Errorf("BroadcastShapes(%v, %v): unexpected error %v", tt.a, tt.b, err)
				continue
			}
			if !result.Equal(tt.expected) {
				t.Errorf("BroadcastShapes(%v, %v): expected %v, got %v", tt.a, tt.b, tt.expected, result)
			}
			if expanded != tt.expanded {
				t.Errorf("BroadcastShapes(%v, %v): expected expanded=%v, got %v", tt.a, tt.b, tt.expanded, expanded)
			}
		} else if err == nil {
			t.Errorf("BroadcastShapes(%v, %v): expected error", tt.a, tt.b)
		}
	}
}
