package odds

// eachCombination calls fn once for every k-subset of n items, passing the
// subset as a slice of ascending indices. The index slice is reused between
// calls; fn must not retain it. Generation is iterative over an explicit
// index vector so depth never scales with n, and visits each subset exactly
// once in lexicographic order.
func eachCombination(n, k int, fn func(indices []int)) {
	if k <= 0 || k > n {
		return
	}

	indices := make([]int, k)
	for i := range indices {
		indices[i] = i
	}

	for {
		fn(indices)

		// Advance to the next combination: find the rightmost index that
		// can still move up, bump it, and reset everything after it.
		i := k - 1
		for i >= 0 && indices[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		indices[i]++
		for j := i + 1; j < k; j++ {
			indices[j] = indices[j-1] + 1
		}
	}
}

// binomial returns n choose k for the small arguments used here
func binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := 1
	for i := 1; i <= k; i++ {
		result = result * (n - k + i) / i
	}
	return result
}
