package graph

import "fmt"

// Tensor is the materialized constant payload embedded in constant-producing
// nodes. The import collaborator fills in exactly one data slice matching the
// element type; the engine only reads tensors, it never computes with them.
type Tensor struct {
	DType  DataType // Element type
	Shape  Shape    // Tensor dimensions
	Floats []float32
	Ints   []int64
}

// NewFloatTensor creates a float32 constant tensor.
func NewFloatTensor(shape Shape, data []float32) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	return &Tensor{DType: Float32, Shape: shape.Clone(), Floats: data}, nil
}

// NewIntTensor creates an int64 constant tensor.
func NewIntTensor(shape Shape, data []int64) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	return &Tensor{DType: Int64, Shape: shape.Clone(), Ints: data}, nil
}

// Float32s returns the float32 payload.
func (t *Tensor) Float32s() ([]float32, error) {
	if t.DType != Float32 {
		return nil, fmt.Errorf("tensor holds %s, not float32", t.DType)
	}
	return t.Floats, nil
}

// Int64s returns the int64 payload.
func (t *Tensor) Int64s() ([]int64, error) {
	if t.DType != Int64 {
		return nil, fmt.Errorf("tensor holds %s, not int64", t.DType)
	}
	return t.Ints, nil
}

// NumElements returns the number of elements in the tensor.
func (t *Tensor) NumElements() int {
	return t.Shape.NumElements()
}
