// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

// Guest programs carry no length field and are padded past their end. The
// constants below are the only known end markers for the supported hardware
// generation and are matched as opaque bit patterns.
const (
	// selfBranch is the encoding of an unconditional branch to itself.
	// Every compiled guest program ends with one.
	selfBranch uint64 = 0xE2400FFFFF07000F

	// predicateMask clears the predicate register bits of a branch.
	predicateMask uint64 = 0xFFFFFFFFFF7FFFFF

	// schedPeriod is the distance between scheduling words.
	schedPeriod = 4

	// graphicsHeaderWords is the size of the header in front of every
	// graphics program, in 64-bit words.
	graphicsHeaderWords = 10
)

// GraphicsMainOffset is the word offset of the first instruction of a
// graphics program.
const GraphicsMainOffset = graphicsHeaderWords

// isSchedInstruction reports whether the word at offset is a scheduling word
// for a program whose first instruction is at mainOffset.
func isSchedInstruction(offset, mainOffset int) bool {
	return (offset-mainOffset)%schedPeriod == 0
}

// EstimateLength returns the number of words of code that belong to the
// program, including the terminating word.
//
// The scan starts after the graphics header (or at zero for compute) and
// stops at the first non-scheduling word that is either a self branch
// (ignoring predicate bits) or zero. When no terminator is found the whole
// buffer is considered part of the program.
func EstimateLength(code []uint64, isCompute bool) int {
	start := graphicsHeaderWords
	if isCompute {
		start = 0
	}

	offset := start
	for offset < len(code) {
		if !isSchedInstruction(offset, start) {
			word := code[offset]
			if word&predicateMask == selfBranch || word == 0 {
				break
			}
		}
		offset++
	}
	return min(offset+1, len(code))
}
