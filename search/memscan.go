package search

import (
	"encoding/binary"
	"math/bits"

	"golang.org/x/sys/cpu"
)

// wideLanesAvailable gates the SWAR-accelerated scan path on a genuine
// runtime CPU-feature probe, the same gating idiom simd/memchr_amd64.go
// uses ahead of its AVX2 intrinsics. This package does not carry an
// assembly-backed AVX2 path of its own: the retrieved copy of simd's
// memchr_amd64.go declares `//go:noescape` AVX2 entry points with no
// corresponding .s file behind them anywhere in the source tree, so
// importing it here would leave an unresolved symbol on amd64 builds (see
// DESIGN.md). wideLanesAvailable only decides whether the 8-byte-at-a-time
// word scan below is worth the setup cost; it does not select assembly.
var wideLanesAvailable = cpu.X86.HasAVX2 || cpu.ARM64.HasASIMD

// indexByte returns the offset of the first occurrence of b in s at or
// after 0, or -1 if absent. It is a pure-Go SWAR (SIMD-within-a-register)
// scan, grounded on simd/memchr_generic_impl.go's memchrGeneric algorithm:
// broadcast b into every byte of a uint64, XOR against each 8-byte chunk,
// and use the classic zero-byte-detection formula to find a match without
// branching per byte.
func indexByte(s []byte, b byte) int {
	n := len(s)
	if n == 0 {
		return -1
	}
	if !wideLanesAvailable || n < 8 {
		for i := 0; i < n; i++ {
			if s[i] == b {
				return i
			}
		}
		return -1
	}

	mask := uint64(b) * 0x0101010101010101
	const lo8 = 0x0101010101010101
	const hi8 = 0x8080808080808080

	i := 0
	for i+8 <= n {
		chunk := binary.LittleEndian.Uint64(s[i:])
		xor := chunk ^ mask
		hasZero := (xor - lo8) &^ xor & hi8
		if hasZero != 0 {
			return i + bits.TrailingZeros64(hasZero)/8
		}
		i += 8
	}
	for i < n {
		if s[i] == b {
			return i
		}
		i++
	}
	return -1
}

// indexAny returns the offset of the first byte in s (at or after 0) for
// which accept reports true, or -1 if none qualifies. Used by nextStart's
// start-bitmap scan (restart_any, restart_word), whose predicate is not
// single-byte equality and so cannot use indexByte's broadcast-compare
// trick.
func indexAny(s []byte, accept func(byte) bool) int {
	for i, c := range s {
		if accept(c) {
			return i
		}
	}
	return -1
}
