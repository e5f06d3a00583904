package brir

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-brir/brir/speaker"
)

// ErrInvalidTrack is returned for track names not of the form
// "<speaker>-<left|right>".
var ErrInvalidTrack = errors.New("brir: invalid track name")

// Track is one output channel: a speaker and an ear.
type Track struct {
	Speaker speaker.Code
	Ear     Ear
}

func (t Track) String() string {
	return fmt.Sprintf("%s-%s", t.Speaker, t.Ear)
}

// ParseTrack parses names such as "FL-left" or "tbr-right".
func ParseTrack(name string) (Track, error) {
	spk, ear, ok := strings.Cut(name, "-")
	if !ok {
		return Track{}, fmt.Errorf("%w: %q", ErrInvalidTrack, name)
	}

	c, err := speaker.Parse(spk)
	if err != nil {
		return Track{}, fmt.Errorf("%w: %q: %w", ErrInvalidTrack, name, err)
	}

	switch strings.ToLower(ear) {
	case "left":
		return Track{Speaker: c, Ear: LeftEar}, nil
	case "right":
		return Track{Speaker: c, Ear: RightEar}, nil
	default:
		return Track{}, fmt.Errorf("%w: %q", ErrInvalidTrack, name)
	}
}

// ParseTrackOrder parses a list of track names.
func ParseTrackOrder(names []string) ([]Track, error) {
	out := make([]Track, 0, len(names))

	for _, n := range names {
		t, err := ParseTrack(n)
		if err != nil {
			return nil, err
		}

		out = append(out, t)
	}

	return out, nil
}

// HexadecagonalOrder is the 14 channel layout used by common headphone
// surround virtualizers.
func HexadecagonalOrder() []Track {
	return []Track{
		{speaker.FL, LeftEar}, {speaker.FL, RightEar},
		{speaker.SL, LeftEar}, {speaker.SL, RightEar},
		{speaker.BL, LeftEar}, {speaker.BL, RightEar},
		{speaker.FC, LeftEar},
		{speaker.FR, RightEar}, {speaker.FR, LeftEar},
		{speaker.SR, RightEar}, {speaker.SR, LeftEar},
		{speaker.BR, RightEar}, {speaker.BR, LeftEar},
		{speaker.FC, RightEar},
	}
}

// Tracks returns the response buffers in the given order for a
// multichannel writer. Missing slots are silent tracks; every track is
// MaxLen() samples long. The returned buffers are copies.
func (s *Store) Tracks(order []Track) [][]float64 {
	n := s.MaxLen()
	out := make([][]float64, len(order))

	for i, t := range order {
		buf := make([]float64, n)
		if p, ok := s.Pair(t.Speaker); ok {
			copy(buf, p.Ear(t.Ear).Data)
		}

		out[i] = buf
	}

	return out
}
