package diff

import "github.com/cmroboticsacademy/facilitate/ast"

// LCS returns the longest common subsequence of xs and ys — as a
// sub-slice of xs — under the supplied equality relation (spec.md
// §8: "for lists X, Y and any equality relation ≡, LCS(X, Y, ≡)
// returns a subsequence of both such that no longer such subsequence
// exists"). Standard O(|xs|·|ys|) dynamic program.
func LCS(xs, ys []ast.Node, equal func(a, b ast.Node) bool) []ast.Node {
	n, m := len(xs), len(ys)
	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if equal(xs[i], ys[j]) {
				dp[i][j] = dp[i+1][j+1] + 1
			} else if dp[i+1][j] >= dp[i][j+1] {
				dp[i][j] = dp[i+1][j]
			} else {
				dp[i][j] = dp[i][j+1]
			}
		}
	}

	var out []ast.Node
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case equal(xs[i], ys[j]):
			out = append(out, xs[i])
			i++
			j++
		case dp[i+1][j] > dp[i][j+1]:
			i++
		default:
			j++
		}
	}
	return out
}
