// Package balance reconciles the left and right ear frequency responses of
// symmetric speaker groups with a pair of minimum-phase FIR filters.
//
// [FIRs] derives the filter pair from two magnitude responses; [Correct]
// applies it to the speaker groups of a [brir.Store].
package balance
