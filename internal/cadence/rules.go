package cadence

type ruleInput struct {
	display   float64
	reference float64
	a         Alignment
}

type rule struct {
	name  string
	kind  Kind
	match func(ruleInput) bool
	// color overrides the kind's fixed colour when set.
	color func(ruleInput) (Color, float64)
}

func (r rule) classify(in ruleInput) Classification {
	c := Classification{Kind: r.kind, Rule: r.name, Color: KindColor(r.kind)}
	if r.color != nil {
		c.Color, c.Hue = r.color(in)
	}
	return c
}

// rules is evaluated in order; earlier entries take priority.
var rules = []rule{
	{name: "samerate", kind: Exact, match: matchSameRate},
	{name: "doubled", kind: Doubled, match: matchDoubled},
	{name: "aligned", kind: Exact, match: matchAligned},
	{name: "skipped", kind: Skipped, match: matchSkipped},
	{name: "partial", kind: Partial, match: matchPartial, color: partialColor},
}

var fallback = rule{name: "default", kind: Unclassified}

// Rules returns the rule names in evaluation order, ending with the default.
func Rules() []string {
	names := make([]string, 0, len(rules)+1)
	for _, r := range rules {
		names = append(names, r.name)
	}
	return append(names, fallback.name)
}

func matchSameRate(in ruleInput) bool {
	return in.display == in.reference
}

// matchDoubled fires when a sparser display frame spans more reference
// frames than one forward step accounts for.
func matchDoubled(in ruleInput) bool {
	a := in.a
	spanned := a.RefStartFrame - boolInt(a.StartsExact) + boolInt(a.EndsExact) + 1
	return spanned < a.RefEndFrame && in.display < in.reference
}

func matchAligned(in ruleInput) bool {
	return in.a.StartsExact
}

func matchSkipped(in ruleInput) bool {
	a := in.a
	return (a.RefStartFrame == a.RefEndFrame && !a.StartsExact) ||
		(a.RefStartFrame == a.RefEndFrame-1 && a.EndsExact)
}

func matchPartial(in ruleInput) bool {
	a := in.a
	return a.RefStartFrame+boolInt(a.EndsExact) == a.RefEndFrame-1
}

// partialColor moves the hue toward 40° as more of the frame precedes the
// next reference boundary and toward 100° as less of it does.
func partialColor(in ruleInput) (Color, float64) {
	hue := PartialHue(in.a)
	return HSL(hue), hue
}

// PartialHue is the hue, in degrees, used for a Partial frame.
func PartialHue(a Alignment) float64 {
	ratio := (a.RefEndFrameStart - a.FrameStart) / (a.FrameEnd - a.FrameStart)
	// Rounded before the subtraction, as in ComputeAlignment.
	return 100 - float64(ratio*60)
}
