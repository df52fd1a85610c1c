package transition

import (
	nlp "depparse/nlp/types"
)

// IsProjective reports whether the gold annotation of sent is a tree
// rooted at ROOT with no crossing arcs, the only input the static oracle
// reproduces exactly.
func IsProjective(sent *nlp.Sentence) bool {
	return IsProjectiveTree(sent.GoldHeads())
}

// IsProjectiveTree checks heads indexed by token position, where
// heads[0] belongs to ROOT and is ignored.
func IsProjectiveTree(heads []int) bool {
	n := len(heads)
	for i := 1; i < n; i++ {
		if heads[i] < 0 || heads[i] >= n || heads[i] == i {
			return false
		}
	}
	// every token must reach ROOT
	for i := 1; i < n; i++ {
		cur, hops := i, 0
		for cur != 0 {
			cur = heads[cur]
			hops++
			if hops > n {
				return false
			}
		}
	}
	for i := 1; i < n; i++ {
		l1, r1 := span(i, heads[i])
		for j := i + 1; j < n; j++ {
			l2, r2 := span(j, heads[j])
			if (l1 < l2 && l2 < r1 && r1 < r2) || (l2 < l1 && l1 < r2 && r2 < r1) {
				return false
			}
		}
	}
	return true
}

func span(a, b int) (int, int) {
	if a < b {
		return a, b
	}
	return b, a
}
