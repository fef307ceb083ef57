// Package trail holds the fixed-length position history drawn behind each
// particle.
//
// A [Buffer] behaves like a shift register: index 0 is the most recent
// position and the last index the oldest. Shifting is O(1); the backing array
// is a ring addressed from a moving head.
package trail

import "github.com/san-kum/trails/internal/dynamo"

type Buffer struct {
	data   []dynamo.Point3
	head   int
	ratios []float64
}

// New returns a buffer of the given length with every slot set to start.
// It panics if length < 1.
func New(length int, start dynamo.Point3) *Buffer {
	if length < 1 {
		panic("trail: length must be at least 1")
	}
	b := &Buffer{
		data:   make([]dynamo.Point3, length),
		ratios: make([]float64, length),
	}
	for i := range b.data {
		b.data[i] = start
	}
	if length > 1 {
		for i := range b.ratios {
			b.ratios[i] = float64(i) / float64(length-1)
		}
	}
	return b
}

// Shift moves every element one slot toward the tail, dropping the oldest,
// and stores p at index 0.
func (b *Buffer) Shift(p dynamo.Point3) {
	b.head--
	if b.head < 0 {
		b.head = len(b.data) - 1
	}
	b.data[b.head] = p
}

func (b *Buffer) Len() int { return len(b.data) }

// At returns the i-th most recent position.
func (b *Buffer) At(i int) dynamo.Point3 {
	return b.data[(b.head+i)%len(b.data)]
}

func (b *Buffer) Head() dynamo.Point3 { return b.data[b.head] }
func (b *Buffer) Tail() dynamo.Point3 { return b.At(len(b.data) - 1) }

// Positions writes the history newest-first into dst, growing it if needed,
// and returns the filled slice.
func (b *Buffer) Positions(dst []dynamo.Point3) []dynamo.Point3 {
	n := len(b.data)
	if cap(dst) < n {
		dst = make([]dynamo.Point3, n)
	}
	dst = dst[:n]
	k := copy(dst, b.data[b.head:])
	copy(dst[k:], b.data[:b.head])
	return dst
}

// Ratios returns i/(length-1) for every slot. The slice is shared and must
// not be modified.
func (b *Buffer) Ratios() []float64 { return b.ratios }
