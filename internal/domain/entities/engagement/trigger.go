// Package engagement defines the trigger signals and dialog states used by
// the lead-capture popup coordinator.
package engagement

import "time"

// TriggerKind identifies which heuristic produced a trigger candidate.
type TriggerKind string

const (
	TriggerExitIntent  TriggerKind = "exit_intent"
	TriggerScrollDepth TriggerKind = "scroll_depth"
	TriggerDwell       TriggerKind = "dwell"
)

// Candidate is a qualifying trigger posted to the coordinator's channel.
// Whichever candidate is consumed first wins; the rest are ignored.
type Candidate struct {
	Kind TriggerKind `json:"kind"`
	At   time.Time   `json:"at"`
}

// ExitIntentSignal is a pointer movement report from the page. It only
// qualifies on desktop, while the pointer is moving, within the top edge band.
type ExitIntentSignal struct {
	PointerY float64 `json:"pointerY"`
	Moving   bool    `json:"moving"`
	Desktop  bool    `json:"desktop"`
}

// Qualifies reports whether the pointer crossed within edgePx of the top edge.
func (s ExitIntentSignal) Qualifies(edgePx float64) bool {
	return s.Desktop && s.Moving && s.PointerY >= 0 && s.PointerY < edgePx
}

// ScrollDepthSignal is a scroll position report from the page.
type ScrollDepthSignal struct {
	ScrollY        float64 `json:"scrollY"`
	ViewportHeight float64 `json:"viewportHeight"`
	DocumentHeight float64 `json:"documentHeight"`
}

// Depth returns the fraction of the document scrolled past the fold.
func (s ScrollDepthSignal) Depth() float64 {
	if s.DocumentHeight <= 0 {
		return 0
	}
	return (s.ScrollY + s.ViewportHeight) / s.DocumentHeight
}

// Qualifies reports whether the scroll depth strictly exceeds the threshold.
func (s ScrollDepthSignal) Qualifies(threshold float64) bool {
	return s.Depth() > threshold
}

// DialogStep tracks where a session is in the two-step popup flow.
type DialogStep int

const (
	DialogClosed DialogStep = iota
	DialogStepOne
	DialogStepTwo
)
