package util

import "testing"

func TestRingBuffer(t *testing.T) {
	rb := NewRingBuffer(10)
	rb.Push([]float32{1, 2, 3, 4, 5, 6})
	rb.Push([]float32{7, 8, 9, 10, 11, 12})

	g := rb.Get(10)
	exp := []float32{3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	for i := range g {
		if g[i] != exp[i] {
			t.Fatal(exp, g)
		}
	}

	g = rb.Get(4)
	exp = []float32{9, 10, 11, 12}
	for i := range g {
		if g[i] != exp[i] {
			t.Fatal(exp, g)
		}
	}
}

func TestRingBufferOversizedPush(t *testing.T) {
	rb := NewRingBuffer(4)
	rb.Push([]float32{1, 2, 3, 4, 5, 6})

	g := rb.Get(4)
	exp := []float32{3, 4, 5, 6}
	for i := range g {
		if g[i] != exp[i] {
			t.Fatal(exp, g)
		}
	}
}

func TestRingBufferStride(t *testing.T) {
	left := NewRingBuffer(3)
	right := NewRingBuffer(3)
	block := []float32{1, -1, 2, -2, 3, -3, 4, -4}

	left.PushStride(block, 0, 2)
	right.PushStride(block, 1, 2)

	l, r := left.Get(3), right.Get(3)
	for i, exp := range []float32{2, 3, 4} {
		if l[i] != exp || r[i] != -exp {
			t.Fatal(l, r)
		}
	}
}
