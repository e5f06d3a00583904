package vbass

import "github.com/cwbudde/algo-brir/dsp/core"

// Shelf is an interaural level difference low shelf used above a minimum
// crossover frequency.
type Shelf struct {
	MinCrossover float64
	Freq         float64
	GainDB       float64
}

// Linear returns the shelf gain as a factor.
func (s Shelf) Linear() float64 {
	return core.DBToLinear(s.GainDB)
}

// IpsilateralGain is the fraction of the shelf band added to the ear on
// the speaker's side.
func (s Shelf) IpsilateralGain() float64 {
	return (s.Linear() - 1) / 2
}

// ContralateralGain is the fraction of the shelf band removed from the
// ear facing away from the speaker.
func (s Shelf) ContralateralGain() float64 {
	return (1 - 1/s.Linear()) / 2
}

// Shelves returns the shelf table in ascending MinCrossover order.
func Shelves() []Shelf {
	return []Shelf{
		{MinCrossover: 80, Freq: 50, GainDB: 3.0},
		{MinCrossover: 160, Freq: 100, GainDB: 4.5},
		{MinCrossover: 250, Freq: 150, GainDB: 6.0},
	}
}

// SelectShelf returns the entry with the highest MinCrossover not above
// crossover.
func SelectShelf(crossover float64) (Shelf, bool) {
	var (
		best  Shelf
		found bool
	)

	for _, s := range Shelves() {
		if s.MinCrossover <= crossover && (!found || s.MinCrossover > best.MinCrossover) {
			best, found = s, true
		}
	}

	return best, found
}
