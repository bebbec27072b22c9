// Package basin decides when a trajectory has been captured by a magnet.
//
// Before any pixel is simulated, [Thresholds] computes one escape energy per
// magnet from the static force field. During integration a [Detector] compares
// the bob's total energy against the threshold of the magnet it hovers over:
// once the bob is inside the capture radius with no more energy than the
// lowest saddle out of that well, it can never leave, and integration stops.
//
// [SuggestBounds] derives the physical region mapped onto the image when the
// configuration does not name one.
package basin
