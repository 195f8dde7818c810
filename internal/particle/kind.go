package particle

import (
	"fmt"
	"math/rand"
	"strings"
)

// Kind selects a burst shape.
type Kind int

const (
	Plain   Kind = iota // normal isotropic burst
	Perfect             // larger, faster, sparkling isotropic burst
	Ring
	Spiral
	Double
	Text
)

var kindNames = map[Kind]string{
	Plain:   "plain",
	Perfect: "perfect",
	Ring:    "ring",
	Spiral:  "spiral",
	Double:  "double",
	Text:    "text",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a config name to a Kind.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown burst kind %q", s)
}

// Weights is a weighted choice between burst kinds.
type Weights map[Kind]float64

// ParseWeights converts config weights keyed by name. A "plain" weight in
// the config means the perfect variant, since weights only apply to
// perfect hits.
func ParseWeights(m map[string]float64) (Weights, error) {
	w := make(Weights, len(m))
	for name, v := range m {
		k, err := ParseKind(name)
		if err != nil {
			return nil, err
		}
		if k == Plain {
			k = Perfect
		}
		if v < 0 {
			return nil, fmt.Errorf("negative weight for %s", name)
		}
		w[k] += v
	}
	return w, nil
}

// Pick draws a kind. Empty or all-zero weights yield Perfect.
func (w Weights) Pick(rng *rand.Rand) Kind {
	var total float64
	for k := Plain; k <= Text; k++ {
		total += w[k]
	}
	if total <= 0 {
		return Perfect
	}
	r := rng.Float64() * total
	for k := Plain; k <= Text; k++ {
		if r < w[k] {
			return k
		}
		r -= w[k]
	}
	return Perfect
}
