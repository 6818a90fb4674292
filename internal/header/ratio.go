package header

// Ratio returns the Ratcliff/Obershelp similarity of a and b: twice the number
// of runes in matching blocks divided by the total rune count. Matching blocks
// are found by taking the longest common run and recursing on both sides of
// it. Two empty strings are identical.
//
// Long second arguments (200 runes or more) ignore "popular" runes, those
// making up more than 1% of b, as anchors for a match, the same heuristic
// common diff libraries apply.
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	m := newMatcher(ra, rb)
	return 2 * float64(m.matches(0, len(ra), 0, len(rb))) / float64(total)
}

type matcher struct {
	a, b []rune
	b2j  map[rune][]int
}

func newMatcher(a, b []rune) *matcher {
	b2j := make(map[rune][]int)
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}
	if n := len(b); n >= 200 {
		limit := n/100 + 1
		for r, idx := range b2j {
			if len(idx) > limit {
				delete(b2j, r)
			}
		}
	}
	return &matcher{a: a, b: b, b2j: b2j}
}

// matches sums the sizes of all matching blocks within a[alo:ahi], b[blo:bhi].
func (m *matcher) matches(alo, ahi, blo, bhi int) int {
	i, j, k := m.longest(alo, ahi, blo, bhi)
	if k == 0 {
		return 0
	}
	n := k
	if alo < i && blo < j {
		n += m.matches(alo, i, blo, j)
	}
	if i+k < ahi && j+k < bhi {
		n += m.matches(i+k, ahi, j+k, bhi)
	}
	return n
}

// longest finds the longest common run, preferring the earliest start in a,
// then in b.
func (m *matcher) longest(alo, ahi, blo, bhi int) (besti, bestj, bestk int) {
	besti, bestj = alo, blo
	j2len := map[int]int{}
	for i := alo; i < ahi; i++ {
		next := map[int]int{}
		for _, j := range m.b2j[m.a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			next[j] = k
			if k > bestk {
				besti, bestj, bestk = i-k+1, j-k+1, k
			}
		}
		j2len = next
	}

	// Popular runes never anchor a match but may extend one.
	for besti > alo && bestj > blo && m.a[besti-1] == m.b[bestj-1] {
		besti, bestj, bestk = besti-1, bestj-1, bestk+1
	}
	for besti+bestk < ahi && bestj+bestk < bhi && m.a[besti+bestk] == m.b[bestj+bestk] {
		bestk++
	}
	return besti, bestj, bestk
}
