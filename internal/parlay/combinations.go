package parlay

// forEachCombination visits every k-subset of [0, n) in lexicographic order.
// The index slice is reused between calls; callers must copy if they retain it.
// Visiting stops early when fn returns false.
func forEachCombination(n, k int, fn func(idx []int) bool) {
	if k <= 0 || k > n {
		return
	}

	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}

	for {
		if !fn(idx) {
			return
		}

		// Advance to the next combination
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}

		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// countCombinations returns C(n, k), saturating instead of overflowing.
// Used only for log output, never for allocation.
func countCombinations(n, k int) int64 {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}

	result := int64(1)
	for i := 0; i < k; i++ {
		result = result * int64(n-i) / int64(i+1)
		if result < 0 {
			return int64(^uint64(0) >> 1)
		}
	}
	return result
}
