package brir

import (
	"fmt"

	"github.com/cwbudde/algo-brir/brir/speaker"
	"github.com/cwbudde/algo-brir/dsp/conv"
)

// AlignPair names two speakers whose ipsilateral ear responses should
// start together. The side of A selects the ear.
type AlignPair struct {
	A, B speaker.Code
}

// DefaultAlignPairs aligns the side and back speakers of each layer to
// the front speaker of the same side.
func DefaultAlignPairs() []AlignPair {
	return []AlignPair{
		{speaker.FL, speaker.SL},
		{speaker.FL, speaker.BL},
		{speaker.FL, speaker.WL},
		{speaker.FR, speaker.SR},
		{speaker.FR, speaker.BR},
		{speaker.FR, speaker.WR},
		{speaker.TFL, speaker.TSL},
		{speaker.TFL, speaker.TBL},
		{speaker.TFR, speaker.TSR},
		{speaker.TFR, speaker.TBR},
	}
}

// PairAlignment is the outcome for one AlignPair.
type PairAlignment struct {
	Pair AlignPair
	Ear  Ear
	// Delay is how many samples A's ipsilateral onset trailed B's before
	// alignment.
	Delay int
}

// SpeakerPadding is the number of zeros prepended to both ears of a
// speaker.
type SpeakerPadding struct {
	Speaker speaker.Code
	Ear     Ear
	Samples int
}

// AlignReport is the outcome of AlignIpsilateral.
type AlignReport struct {
	Pairs   []PairAlignment
	Padding []SpeakerPadding
}

// AlignIpsilateral equalizes the onset of speakers sharing an ear. For
// each pair present in the store (center pairs are skipped), segmentMs of
// the ipsilateral ear responses starting at their peaks are
// cross-correlated; the correlation lag refines the peak offset into the
// delay between the two.
//
// Pairs sharing an ear are chained: every speaker reached through them
// is placed on one onset axis, and each is zero padded up to the latest
// onset. Padding is applied to both ears of a speaker, not only to the
// ipsilateral response, so the speaker's ITD is kept. Left ear pairs are
// resolved before right ear pairs.
func (s *Store) AlignIpsilateral(pairs []AlignPair, segmentMs float64) (AlignReport, error) {
	segLen := int(float64(s.fs) / 1000 * segmentMs)
	if segLen <= 0 {
		return AlignReport{}, fmt.Errorf("brir: align: segment of %v ms is empty", segmentMs)
	}

	var report AlignReport

	for _, ear := range []Ear{LeftEar, RightEar} {
		axis := newOnsetAxis()

		for _, pr := range pairs {
			if pr.A == pr.B || !s.Has(pr.A, pr.B) || ipsilateralEar(pr.A) != ear {
				continue
			}

			delay, ok, err := s.onsetDelay(pr, ear, segLen)
			if err != nil {
				return report, err
			}

			if !ok {
				continue
			}

			if !axis.link(pr.A, pr.B, delay) {
				s.logger.Warning("%s and %s are already aligned through other pairs; their %d sample delay is ignored",
					pr.A, pr.B, delay)
			}

			s.logger.Info("%s ear of %s trails %s by %d samples", ear, pr.A, pr.B, delay)
			report.Pairs = append(report.Pairs, PairAlignment{Pair: pr, Ear: ear, Delay: delay})
		}

		for _, pad := range axis.padding() {
			p, _ := s.Pair(pad.code)
			padFront(p, pad.n)
			report.Padding = append(report.Padding, SpeakerPadding{Speaker: pad.code, Ear: ear, Samples: pad.n})
		}
	}

	return report, nil
}

// onsetDelay measures how many samples A's ear response onset trails B's.
func (s *Store) onsetDelay(pr AlignPair, ear Ear, segLen int) (int, bool, error) {
	pa, _ := s.Pair(pr.A)
	pb, _ := s.Pair(pr.B)
	a, b := pa.Ear(ear), pb.Ear(ear)

	peakA, peakB := a.PeakIndex(), b.PeakIndex()
	if peakA < 0 || peakB < 0 {
		return 0, false, nil
	}

	lag, err := conv.Delay(a.Data[peakA:min(peakA+segLen, a.Len())], b.Data[peakB:min(peakB+segLen, b.Len())])
	if err != nil {
		return 0, false, fmt.Errorf("brir: align %s/%s: %w", pr.A, pr.B, err)
	}

	return peakA + lag - peakB, true, nil
}

// onsetAxis places speakers linked by measured delays on relative onset
// positions. Speakers that are not linked form separate groups.
type onsetAxis struct {
	onset map[speaker.Code]int
	group map[speaker.Code]int
	order []speaker.Code
	next  int
}

type padding struct {
	code speaker.Code
	n    int
}

func newOnsetAxis() *onsetAxis {
	return &onsetAxis{onset: make(map[speaker.Code]int), group: make(map[speaker.Code]int)}
}

func (x *onsetAxis) place(c speaker.Code, onset, group int) {
	x.onset[c] = onset
	x.group[c] = group
	x.order = append(x.order, c)
}

// link records that a's onset trails b's by delay. It reports false when
// a and b are already in one group at a different distance; the axis is
// then left unchanged.
func (x *onsetAxis) link(a, b speaker.Code, delay int) bool {
	ga, knownA := x.group[a]
	gb, knownB := x.group[b]

	switch {
	case knownA && knownB && ga == gb:
		return x.onset[a]-x.onset[b] == delay
	case knownA && knownB:
		// Move b's group onto a's.
		shift := x.onset[a] - delay - x.onset[b]
		for _, c := range x.order {
			if x.group[c] == gb {
				x.onset[c] += shift
				x.group[c] = ga
			}
		}
	case knownA:
		x.place(b, x.onset[a]-delay, ga)
	case knownB:
		x.place(a, x.onset[b]+delay, gb)
	default:
		x.place(a, 0, x.next)
		x.place(b, -delay, x.next)
		x.next++
	}

	return true
}

// padding returns, per speaker, the zeros that bring its onset up to the
// latest onset of its group.
func (x *onsetAxis) padding() []padding {
	latest := make(map[int]int)
	for _, c := range x.order {
		g := x.group[c]
		if l, ok := latest[g]; !ok || x.onset[c] > l {
			latest[g] = x.onset[c]
		}
	}

	var out []padding

	for _, c := range x.order {
		if n := latest[x.group[c]] - x.onset[c]; n > 0 {
			out = append(out, padding{code: c, n: n})
		}
	}

	return out
}

// ipsilateralEar returns the ear on the speaker's side; center speakers
// have none.
func ipsilateralEar(c speaker.Code) Ear {
	switch c.Side() {
	case speaker.Left:
		return LeftEar
	case speaker.Right:
		return RightEar
	default:
		return -1
	}
}

func padFront(p *Pair, n int) {
	if n <= 0 {
		return
	}

	for _, r := range []*ImpulseResponse{&p.Left, &p.Right} {
		r.Data = append(make([]float64, n, n+r.Len()), r.Data...)
	}
}
