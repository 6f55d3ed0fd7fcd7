package search

import "github.com/automeka/boost-regex/program"

// kmpScan runs one KMP pass over haystack starting at pos against table,
// returning the offset of the next match and the KMP state reached at the
// point the scan stopped (either at a match or at end of input). Grounded
// on program.BuildKMPTable's failure-function construction and spec.md
// §4.1's restart_lit/restart_fixed_lit procedure.
func kmpScan(table *program.KMPTable, haystack []byte, pos int) (matchPos int, state int, found bool) {
	lit := table.Literal
	failure := table.Failure
	j := 0
	for i := pos; i < len(haystack); i++ {
		c := haystack[i]
		for j > 0 && c != lit[j] {
			j = failure[j-1]
		}
		if c == lit[j] {
			j++
		}
		if j == len(lit) {
			return i - len(lit) + 1, j, true
		}
	}
	return -1, j, false
}
