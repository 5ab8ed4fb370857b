// Package similarity implements the lexical similarity score used by the
// query resolver's fuzzy fallback.
package similarity

import "strings"

// Ratio computes a similarity score in [0,1] between two strings.
//
// Both inputs are lowercased and trimmed before scoring. The score is the
// Ratcliff/Obershelp sequence-matcher ratio: 2*M/T, where M is the total
// length of the matching blocks found by recursively locating the longest
// common substring and T is the combined length of both inputs. Identical
// strings score 1, strings sharing no characters score 0. Two empty
// strings score 1.
func Ratio(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))

	ra := []rune(a)
	rb := []rune(b)

	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}

	matched := matchedSize(ra, rb, 0, len(ra), 0, len(rb))
	return 2.0 * float64(matched) / float64(total)
}

// matchedSize sums the sizes of all matching blocks in a[alo:ahi] vs
// b[blo:bhi] by splitting around the longest match and recursing on the
// unmatched regions to its left and right.
func matchedSize(a, b []rune, alo, ahi, blo, bhi int) int {
	i, j, size := longestMatch(a, b, alo, ahi, blo, bhi)
	if size == 0 {
		return 0
	}
	return size +
		matchedSize(a, b, alo, i, blo, j) +
		matchedSize(a, b, i+size, ahi, j+size, bhi)
}

// longestMatch finds the longest matching block in a[alo:ahi] and
// b[blo:bhi]. Of all maximal blocks it returns the one starting earliest
// in a, and of those the one starting earliest in b, so repeated calls are
// fully deterministic.
func longestMatch(a, b []rune, alo, ahi, blo, bhi int) (besti, bestj, bestsize int) {
	besti, bestj = alo, blo

	// j2len[j] holds the length of the match ending at a[i-1], b[j].
	j2len := make(map[int]int, bhi-blo)
	for i := alo; i < ahi; i++ {
		newj2len := make(map[int]int, bhi-blo)
		for j := blo; j < bhi; j++ {
			if b[j] != a[i] {
				continue
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}
	return besti, bestj, bestsize
}
