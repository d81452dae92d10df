package core

// EnsureLen returns a slice with exactly n elements, reusing buf capacity if
// possible. The contents of a reused slice are not cleared. n <= 0 yields an
// empty slice.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}

	if cap(buf) >= n {
		return buf[:n]
	}

	return make([]float64, n)
}
