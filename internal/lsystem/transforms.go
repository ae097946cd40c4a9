package lsystem

import "cogentcore.org/core/math32"

// Transforms collects emitted instance matrices per geometry class. Buckets
// are append-only and keep emission order.
type Transforms struct {
	order   []GeometryClass
	buckets map[GeometryClass][]math32.Matrix4
}

// NewTransforms returns empty buckets.
func NewTransforms() *Transforms {
	return &Transforms{buckets: map[GeometryClass][]math32.Matrix4{}}
}

// Append adds m to the bucket of class.
func (t *Transforms) Append(class GeometryClass, m math32.Matrix4) {
	if _, ok := t.buckets[class]; !ok {
		t.order = append(t.order, class)
	}
	t.buckets[class] = append(t.buckets[class], m)
}

// Class returns the matrices emitted for class, in emission order.
func (t *Transforms) Class(class GeometryClass) []math32.Matrix4 {
	return t.buckets[class]
}

// Classes lists the classes in the order they first received a transform.
func (t *Transforms) Classes() []GeometryClass {
	return append([]GeometryClass(nil), t.order...)
}

// Len returns the number of matrices emitted for class.
func (t *Transforms) Len(class GeometryClass) int { return len(t.buckets[class]) }

// Total returns the number of matrices across all classes.
func (t *Transforms) Total() int {
	n := 0
	for _, b := range t.buckets {
		n += len(b)
	}
	return n
}

// Counts returns the per-class matrix counts.
func (t *Transforms) Counts() map[GeometryClass]int {
	out := make(map[GeometryClass]int, len(t.buckets))
	for c, b := range t.buckets {
		out[c] = len(b)
	}
	return out
}

// Map exposes the buckets keyed by class name, for encoding.
func (t *Transforms) Map() map[string][]math32.Matrix4 {
	out := make(map[string][]math32.Matrix4, len(t.buckets))
	for c, b := range t.buckets {
		out[string(c)] = b
	}
	return out
}

// Columns splits the bucket of class into the four per-instance column
// arrays an instanced vertex layout expects, each 4 floats per instance.
func (t *Transforms) Columns(class GeometryClass) [4][]float32 {
	var cols [4][]float32
	b := t.buckets[class]
	for i := range cols {
		cols[i] = make([]float32, 0, 4*len(b))
	}
	for _, m := range b {
		for c := 0; c < 4; c++ {
			cols[c] = append(cols[c], m[4*c], m[4*c+1], m[4*c+2], m[4*c+3])
		}
	}
	return cols
}
