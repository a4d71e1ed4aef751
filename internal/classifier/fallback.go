package classifier

import (
	"log"

	"github.com/ayusman/rangoli/internal/tracker"
)

// Fallback composes the learned and rule-based variants: the learned path
// is tried first and, if it errors, the rules answer for that frame only.
// The learned path is tried again on the next frame, so a transient
// inference failure never degrades the rest of the session.
type Fallback struct {
	learned Classifier
	rules   *RuleBased
}

// NewFallback wraps a learned classifier with a rule-based safety net.
// learned may be nil when no model could be loaded; every frame then goes
// straight to the rules.
func NewFallback(learned Classifier, rules *RuleBased) *Fallback {
	return &Fallback{learned: learned, rules: rules}
}

// Classify never returns an error: the rule-based path cannot fail.
func (c *Fallback) Classify(pose *tracker.HandPose) (Result, error) {
	if c.learned != nil {
		result, err := c.learned.Classify(pose)
		if err == nil {
			return result, nil
		}
		log.Printf("Learned classifier failed, using rules for this frame: %v", err)
	}
	return c.rules.Classify(pose)
}
