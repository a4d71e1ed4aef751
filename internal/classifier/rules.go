package classifier

import "github.com/ayusman/rangoli/internal/tracker"

// RuleConfig holds the geometric thresholds for rule-based classification.
// Values are distances in the tracker's normalized coordinate space.
type RuleConfig struct {
	// FingerUpMargin is how far above its PIP joint a fingertip must sit
	// (smaller y = higher in image space) before the finger counts as up.
	FingerUpMargin float64

	// ThumbExtension is the minimum tip-to-MCP distance for the thumb to
	// count as extended.
	ThumbExtension float64

	// FingerExtension is the minimum tip-to-MCP distance for the other
	// four fingers to count as extended.
	FingerExtension float64

	// PinchDistance is the maximum 2D thumb-tip-to-index-tip distance for
	// a pinch.
	PinchDistance float64
}

// DefaultRuleConfig returns the thresholds the rules were tuned with.
func DefaultRuleConfig() RuleConfig {
	return RuleConfig{
		FingerUpMargin:  0.02,
		ThumbExtension:  0.14,
		FingerExtension: 0.18,
		PinchDistance:   0.05,
	}
}

// RuleBased classifies poses with deterministic geometric rules. It never
// fails, which makes it the fallback of last resort for the learned path.
type RuleBased struct {
	config RuleConfig
}

// NewRuleBased creates a rule-based classifier with the given thresholds.
func NewRuleBased(config RuleConfig) *RuleBased {
	return &RuleBased{config: config}
}

// Classify applies the rules in precedence order: pinch first, then
// pointing, then open palm, then idle. Pinch wins even when finger-up
// conditions for another class also hold. Confidence is always 1.0.
func (c *RuleBased) Classify(pose *tracker.HandPose) (Result, error) {
	label := LabelIdle

	switch {
	case c.isPinch(pose):
		label = LabelPinch
	case c.isPointing(pose):
		label = LabelPointing
	case c.isOpenPalm(pose):
		label = LabelOpenPalm
	}

	return Result{Label: label, Confidence: 1.0}, nil
}

func (c *RuleBased) isPinch(pose *tracker.HandPose) bool {
	d := tracker.Distance2D(pose.Points[tracker.ThumbTip], pose.Points[tracker.IndexTip])
	return d < c.config.PinchDistance
}

func (c *RuleBased) isPointing(pose *tracker.HandPose) bool {
	if !c.fingerRaised(pose, tracker.IndexTip, tracker.IndexPIP, tracker.IndexMCP) {
		return false
	}
	// The other three fingers must not be raised.
	return !c.fingerRaised(pose, tracker.MiddleTip, tracker.MiddlePIP, tracker.MiddleMCP) &&
		!c.fingerRaised(pose, tracker.RingTip, tracker.RingPIP, tracker.RingMCP) &&
		!c.fingerRaised(pose, tracker.PinkyTip, tracker.PinkyPIP, tracker.PinkyMCP)
}

func (c *RuleBased) isOpenPalm(pose *tracker.HandPose) bool {
	if !c.thumbExtended(pose) {
		return false
	}
	return c.fingerRaised(pose, tracker.IndexTip, tracker.IndexPIP, tracker.IndexMCP) &&
		c.fingerRaised(pose, tracker.MiddleTip, tracker.MiddlePIP, tracker.MiddleMCP) &&
		c.fingerRaised(pose, tracker.RingTip, tracker.RingPIP, tracker.RingMCP) &&
		c.fingerRaised(pose, tracker.PinkyTip, tracker.PinkyPIP, tracker.PinkyMCP)
}

// fingerRaised combines the up test (tip above PIP by the jitter margin)
// with the extension test (tip far enough from the MCP in 3D).
func (c *RuleBased) fingerRaised(pose *tracker.HandPose, tip, pip, mcp int) bool {
	up := pose.Points[tip].Y < pose.Points[pip].Y-c.config.FingerUpMargin
	extended := tracker.Distance3D(pose.Points[tip], pose.Points[mcp]) > c.config.FingerExtension
	return up && extended
}

// thumbExtended only checks extension: the thumb points sideways on most
// hands, so a tip-above-joint test would misread it.
func (c *RuleBased) thumbExtended(pose *tracker.HandPose) bool {
	d := tracker.Distance3D(pose.Points[tracker.ThumbTip], pose.Points[tracker.ThumbMCP])
	return d > c.config.ThumbExtension
}
