package cadence

import "fmt"

// Kind is the cadence outcome for a single display frame.
type Kind int

const (
	Unclassified Kind = iota
	Exact
	Doubled
	Skipped
	Partial
)

var kindNames = map[Kind]string{
	Unclassified: "unclassified",
	Exact:        "exact",
	Doubled:      "doubled",
	Skipped:      "skipped",
	Partial:      "partial",
}

// Kinds lists every outcome in presentation order.
func Kinds() []Kind {
	return []Kind{Exact, Doubled, Skipped, Partial, Unclassified}
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name produced by MarshalText.
func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown cadence kind %q", text)
}

// Classification is the outcome for one display frame and how to show it.
type Classification struct {
	Kind  Kind   `json:"kind"`
	Color Color  `json:"color"`
	Rule  string `json:"rule"`
	// Hue is only meaningful for Partial frames.
	Hue float64 `json:"hue,omitempty"`
}

// Classify computes the alignment of frame and classifies it.
func Classify(displayFPS, referenceFPS float64, frame int) Classification {
	return ClassifyAlignment(displayFPS, referenceFPS, ComputeAlignment(displayFPS, referenceFPS, frame))
}

// ClassifyAlignment runs the rule chain over an alignment already computed
// for the same pair of rates. The first matching rule wins.
func ClassifyAlignment(displayFPS, referenceFPS float64, a Alignment) Classification {
	in := ruleInput{display: displayFPS, reference: referenceFPS, a: a}
	for _, r := range rules {
		if r.match(in) {
			return r.classify(in)
		}
	}
	return fallback.classify(in)
}

// Sequence classifies every frame of one second of display frames.
func Sequence(displayFPS, referenceFPS float64) []Classification {
	count := FrameCount(displayFPS)
	if count <= 0 {
		return nil
	}
	out := make([]Classification, count)
	for i := range out {
		out[i] = Classify(displayFPS, referenceFPS, i)
	}
	return out
}

// Summary counts classifications per kind.
type Summary map[Kind]int

// Summarize tallies a sequence of classifications.
func Summarize(items []Classification) Summary {
	summary := make(Summary, len(kindNames))
	for _, item := range items {
		summary[item.Kind]++
	}
	return summary
}

// Total returns the number of frames counted.
func (s Summary) Total() int {
	total := 0
	for _, n := range s {
		total += n
	}
	return total
}
