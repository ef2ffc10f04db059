// Package bisect finds insertion points in ascending slices. Every coefficient
// table and allowable-stress band in the calculator is indexed through it.
package bisect

import "cmp"

// Side selects how ties with equal elements are broken.
type Side int

const (
	// Left returns the first index whose element is >= target.
	Left Side = iota
	// Right returns the first index whose element is > target.
	Right
)

func (s Side) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

// Search returns the smallest index i in [0, len(arr)] such that arr[i] >= target
// (Left) or arr[i] > target (Right). It returns len(arr) when target lies past
// every element. arr must be sorted ascending.
func Search[T cmp.Ordered](arr []T, target T, side Side) int {
	lo, hi := 0, len(arr)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		var past bool
		if side == Right {
			past = arr[mid] > target
		} else {
			past = arr[mid] >= target
		}
		if past {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}
