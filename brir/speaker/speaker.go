// Package speaker enumerates the loudspeaker positions of a binaural
// measurement and the per-position constants that drive side-dependent
// processing: side, expected interaural level difference and physical
// delay.
package speaker

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSpeaker is returned by Parse for names outside the enumeration.
var ErrUnknownSpeaker = errors.New("speaker: unknown speaker name")

// Code identifies a loudspeaker position.
type Code int

// Speaker positions in canonical order. Iteration over a store follows
// this order.
const (
	FL Code = iota
	FR
	FC
	BL
	BR
	SL
	SR
	WL
	WR
	TFL
	TFR
	TSL
	TSR
	TBL
	TBR
	BC
	TFC
	TBC
	LFE
	SW

	// NumCodes is the number of known positions.
	NumCodes int = iota
)

// Side is the half of the listening space a speaker sits in.
type Side int

const (
	Center Side = iota
	Left
	Right
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "center"
	}
}

var names = [NumCodes]string{
	"FL", "FR", "FC", "BL", "BR", "SL", "SR", "WL", "WR",
	"TFL", "TFR", "TSL", "TSR", "TBL", "TBR",
	"BC", "TFC", "TBC", "LFE", "SW",
}

// sides is an explicit allow-list; codes not listed are center.
var sides = [NumCodes]Side{
	FL: Left, SL: Left, BL: Left, WL: Left, TFL: Left, TSL: Left, TBL: Left,
	FR: Right, SR: Right, BR: Right, WR: Right, TFR: Right, TSR: Right, TBR: Right,
}

// priors is the expected sign and rough confidence of the left-minus-right
// level difference for each direction. WL and WR have no prior.
var priors = [NumCodes]float64{
	FL: 1, FC: 0, FR: -1,
	SL: 1, SR: -1,
	BL: 0.8, BC: 0, BR: -0.8,
	TFL: 0.5, TFC: 0, TFR: -0.5,
	TBL: 0.5, TBC: 0, TBR: -0.5,
	TSL: 0.5, TSR: -0.5,
	LFE: 0, SW: 0,
}

// Valid reports whether c is a known position.
func (c Code) Valid() bool {
	return c >= 0 && int(c) < NumCodes
}

func (c Code) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Code(%d)", int(c))
	}

	return names[c]
}

// Side returns the side of c.
func (c Code) Side() Side {
	if !c.Valid() {
		return Center
	}

	return sides[c]
}

// Prior returns the expected left-minus-right level difference sign in
// [-1, 1].
func (c Code) Prior() float64 {
	if !c.Valid() {
		return 0
	}

	return priors[c]
}

// Parse maps a speaker name such as "FL" or "tbr" to its Code.
func Parse(name string) (Code, error) {
	up := strings.ToUpper(strings.TrimSpace(name))
	for i, n := range names {
		if n == up {
			return Code(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownSpeaker, name)
}

// All returns every code in canonical order.
func All() []Code {
	out := make([]Code, NumCodes)
	for i := range out {
		out[i] = Code(i)
	}

	return out
}

// PriorTable maps each position to its expected level-difference sign.
type PriorTable [NumCodes]float64

// DefaultPriors returns the built-in prior table.
func DefaultPriors() PriorTable {
	return PriorTable(priors)
}

// Of returns the prior of c, or 0 for unknown codes.
func (p PriorTable) Of(c Code) float64 {
	if !c.Valid() {
		return 0
	}

	return p[c]
}

// DelayTable holds the expected physical delay in seconds from each
// position to the nearer ear, relative to the closest speaker.
type DelayTable [NumCodes]float64

// DefaultDelays returns a table of zero delays: every speaker is assumed
// to be at the same distance from the listener.
func DefaultDelays() DelayTable {
	return DelayTable{}
}

// Of returns the delay of c in seconds, or 0 for unknown codes.
func (d DelayTable) Of(c Code) float64 {
	if !c.Valid() {
		return 0
	}

	return d[c]
}
