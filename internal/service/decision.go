package service

import "github.com/hdzambrano05/Intelligent-Agent-Based-Model/internal/core"

// Band is the refinement action implied by an averaged score.
type Band int

const (
	BandMandatoryRewrite Band = iota
	BandSuggestions
	BandOptional
	BandAccepted
)

// String returns the band name.
func (b Band) String() string {
	switch b {
	case BandMandatoryRewrite:
		return "mandatory_rewrite"
	case BandSuggestions:
		return "suggestions"
	case BandOptional:
		return "optional"
	case BandAccepted:
		return "accepted"
	}
	return "unknown"
}

// State returns the decision state recorded for the band.
func (b Band) State() core.DecisionState {
	switch b {
	case BandMandatoryRewrite:
		return core.DecisionMandatoryRewrite
	case BandSuggestions:
		return core.DecisionSuggestions
	case BandAccepted:
		return core.DecisionAccepted
	}
	return core.DecisionOptional
}

// BandFor maps an averaged score to its band. The partition is total over
// [0, 100] and each boundary value maps to exactly one band: scores below 35
// force a rewrite, up to and including 70 yield suggestions, 90 and above are
// accepted, and everything in between is optional improvement.
func BandFor(average float64) Band {
	switch {
	case average < 35:
		return BandMandatoryRewrite
	case average <= 70:
		return BandSuggestions
	case average >= 90:
		return BandAccepted
	default:
		return BandOptional
	}
}

// NeedsRefinement reports whether the band triggers follow-up model calls.
func (b Band) NeedsRefinement() bool {
	return b == BandMandatoryRewrite || b == BandSuggestions
}
