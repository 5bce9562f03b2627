package asterisk

// Canonical option sets for the study. These mirror the data collection
// protocol and drive batch discovery and gathering; a table loaded from disk
// may of course contain other hands.
var (
	Subjects     = []string{"sub1", "sub2", "sub3"}
	HandNames    = []string{"2v2", "2v3", "3v3", "barrett", "basic", "m2active", "m2stiff", "modelvf"}
	TrialNumbers = []string{"1", "2", "3", "4", "5"}

	// translationOnlyHands cannot twist, so they only run the "n" rotation
	// condition and skip rotation-only trials entirely.
	translationOnlyHands = map[string]bool{
		"basic":   true,
		"m2stiff": true,
		"modelvf": true,
	}

	twistModes      = []RotationMode{RotNone, RotMinus15, RotPlus15}
	continuousModes = []RotationMode{RotCW, RotCCW}
)

// TaskCondition is one (translation, rotation) combination of the protocol.
type TaskCondition struct {
	Translation Direction
	Rotation    RotationMode
}

// Key returns the short task key used to group trials, e.g. "a_n".
func (c TaskCondition) Key() string {
	return string(c.Translation) + "_" + string(c.Rotation)
}

// ConditionsForHand lists every (translation, rotation) pair a hand runs.
// Continuous cw/ccw rotation only occurs with no translation, and
// translation-only hands skip twist and rotation-only conditions.
func ConditionsForHand(hand string) []TaskCondition {
	var out []TaskCondition

	for _, d := range TranslationDirections {
		if translationOnlyHands[hand] {
			out = append(out, TaskCondition{Translation: d, Rotation: RotNone})
			continue
		}
		for _, r := range twistModes {
			out = append(out, TaskCondition{Translation: d, Rotation: r})
		}
	}

	if !translationOnlyHands[hand] {
		for _, r := range continuousModes {
			out = append(out, TaskCondition{Translation: DirNone, Rotation: r})
		}
	}
	return out
}

// TrialIdentities enumerates every trial identity for one subject and hand
// across all task conditions and trial numbers.
func TrialIdentities(subject, hand string) []Identity {
	var out []Identity
	for _, c := range ConditionsForHand(hand) {
		for _, n := range TrialNumbers {
			out = append(out, Identity{
				Subject:     subject,
				Hand:        hand,
				Translation: c.Translation,
				Rotation:    c.Rotation,
				Number:      n,
			})
		}
	}
	return out
}
