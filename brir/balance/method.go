package balance

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidMethod is returned for method strings that are neither a known
// method name nor a number.
var ErrInvalidMethod = errors.New("balance: invalid channel balance method")

// Kind selects how the left and right responses are reconciled.
type Kind int

const (
	// Trend equalizes the right ear toward the smoothed left/right
	// difference.
	Trend Kind = iota + 1
	// LeftReference equalizes the right ear toward the left.
	LeftReference
	// RightReference equalizes the left ear toward the right.
	RightReference
	// Average equalizes both ears toward their mean response.
	Average
	// Minimum equalizes both ears toward their per-frequency minimum.
	Minimum
	// Mids applies a broadband gain from the 100-3000 Hz level difference
	// to the right ear.
	Mids
	// Fixed applies GainDB to the right ear.
	Fixed
)

var kindNames = map[string]Kind{
	"trend": Trend,
	"left":  LeftReference,
	"right": RightReference,
	"avg":   Average,
	"min":   Minimum,
	"mids":  Mids,
}

// Method is a parsed channel balance method.
type Method struct {
	Kind Kind
	// GainDB is the right ear gain of a Fixed method.
	GainDB float64
}

// ParseMethod parses one of trend, left, right, avg, min, mids or a
// number of dB.
func ParseMethod(s string) (Method, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if k, ok := kindNames[name]; ok {
		return Method{Kind: k}, nil
	}

	g, err := strconv.ParseFloat(name, 64)
	if err != nil || math.IsNaN(g) || math.IsInf(g, 0) {
		return Method{}, fmt.Errorf("%w: %q", ErrInvalidMethod, s)
	}

	return Method{Kind: Fixed, GainDB: g}, nil
}

func (m Method) String() string {
	if m.Kind == Fixed {
		return strconv.FormatFloat(m.GainDB, 'g', -1, 64)
	}

	for name, k := range kindNames {
		if k == m.Kind {
			return name
		}
	}

	return fmt.Sprintf("Method(%d)", int(m.Kind))
}
