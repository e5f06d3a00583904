// Package micdev estimates and removes the left/right level bias caused by
// misplaced binaural microphones.
//
// A placement error shifts the interaural level difference by the same
// amount whatever direction the sound comes from, while the level
// difference caused by the head depends on direction. The [Corrector]
// measures per-band level differences for every speaker, attributes to the
// microphones only the part that contradicts each direction's expected
// sign (or that appears on speakers expected to be symmetric), checks the
// estimate for consistency and applies a magnitude-only correction split
// evenly between the ears.
//
// Typical use is a single call to [Corrector.Apply]; the individual steps
// are exported for diagnostics.
package micdev
