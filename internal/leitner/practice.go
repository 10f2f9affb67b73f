package leitner

import "math/bits"

// IsDue reports whether bucket b is reviewed on day. Bucket 0 is due every
// day; bucket b >= 1 is due when day is a multiple of 2^b.
func IsDue(b, day int) bool {
	if b <= 0 {
		return true
	}
	// 2^b no longer fits in an int; only day 0 is a multiple.
	if b >= bits.UintSize-1 {
		return day == 0
	}
	return day%(1<<b) == 0
}

// Practice returns the cards due on day (0-based). Buckets past the end of
// the slice contribute nothing and nil sets are skipped.
func Practice(buckets []CardSet, day int) CardSet {
	due := CardSet{}
	for b, s := range buckets {
		if s == nil || !IsDue(b, day) {
			continue
		}
		for id, c := range s {
			due[id] = c
		}
	}
	return due
}
