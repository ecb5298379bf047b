package bins

// GroupConsecutive labels runs of non-empty buckets.
//
// Walking the buckets in order with a counter starting at 0, a non-empty
// bucket gets the current counter and an empty bucket gets -1 and advances the
// counter. Adjacent non-empty buckets therefore share a group id, and ids grow
// by exactly one per empty bucket crossed.
//
//	GroupConsecutive([][]int{{1, 2, 3}, {4, 5}, {}, {6, 7, 8}}) // [0 0 -1 1]
func GroupConsecutive[T any](buckets [][]T) []int {
	groups := make([]int, len(buckets))
	group := 0
	for i, b := range buckets {
		if len(b) == 0 {
			groups[i] = -1
			group++
			continue
		}
		groups[i] = group
	}
	return groups
}

// GroupBuckets applies [GroupConsecutive] to the column lists of buckets.
func GroupBuckets(buckets []Bucket) []int {
	return GroupConsecutive(Columns(buckets))
}
