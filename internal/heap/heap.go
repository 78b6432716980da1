// Package heap implements generic slice-based binary heap operations.
// The matcher's height-indexed candidate list (gumtree package) is
// built on top of PushSlice/PopSlice.
package heap

// PushSlice adds item to x while preserving the heap invariant
// determined by less.
func PushSlice[T any](x *[]T, item T, less func(a, b T) bool) {
	*x = append(*x, item)
	siftUp(*x, len(*x)-1, less)
}

// PopSlice removes and returns the "smallest" element of x (by less)
// and restores the heap invariant.
func PopSlice[T any](x *[]T, less func(a, b T) bool) T {
	top := (*x)[0]
	last := len(*x) - 1
	(*x)[0] = (*x)[last]
	*x = (*x)[:last]
	if len(*x) > 0 {
		siftDown(*x, 0, less)
	}
	return top
}

// FixSlice restores the heap invariant after the value at x[index]
// has changed in place.
func FixSlice[T any](x []T, index int, less func(a, b T) bool) {
	siftDown(x, index, less)
	siftUp(x, index, less)
}

// OrderSlice heapifies x in place. After OrderSlice, x[0] is the
// "smallest" element under less.
func OrderSlice[T any](x []T, less func(a, b T) bool) {
	for i := len(x)/2 - 1; i >= 0; i-- {
		siftDown(x, i, less)
	}
}

func siftUp[T any](x []T, i int, less func(a, b T) bool) {
	for i > 0 {
		parent := (i - 1) / 2
		if less(x[parent], x[i]) {
			return
		}
		x[parent], x[i] = x[i], x[parent]
		i = parent
	}
}

func siftDown[T any](x []T, i int, less func(a, b T) bool) {
	n := len(x)
	for {
		left := 2*i + 1
		if left >= n {
			return
		}
		smallest := left
		if right := left + 1; right < n && less(x[right], x[left]) {
			smallest = right
		}
		if less(x[i], x[smallest]) {
			return
		}
		x[i], x[smallest] = x[smallest], x[i]
		i = smallest
	}
}
