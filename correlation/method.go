// Package correlation provides correlation statistics and correlation matrices.
package correlation

import (
	"fmt"
	"strings"
)

// Method selects the correlation statistic.
// The zero value is Spearman.
type Method int

const (
	// Spearman rank correlation. Detects monotonic relationships and is
	// robust to outliers.
	Spearman Method = iota
	// Pearson product-moment correlation. Detects linear relationships.
	Pearson
	// Kendall tau-b rank correlation, based on concordant pairs.
	Kendall
)

// Methods lists every supported method.
var Methods = []Method{Spearman, Pearson, Kendall}

// String returns the lower-case method name.
func (m Method) String() string {
	switch m {
	case Spearman:
		return "spearman"
	case Pearson:
		return "pearson"
	case Kendall:
		return "kendall"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// Valid reports whether m is a supported method.
func (m Method) Valid() bool {
	return m >= Spearman && m <= Kendall
}

// ParseMethod parses a method name, ignoring case and surrounding space.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "spearman":
		return Spearman, nil
	case "pearson":
		return Pearson, nil
	case "kendall":
		return Kendall, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Set implements pflag.Value so a Method can be bound to a command-line flag.
func (m *Method) Set(s string) error {
	return m.UnmarshalText([]byte(s))
}

// Type implements pflag.Value.
func (m *Method) Type() string {
	return "method"
}

// Func returns the pairwise coefficient function for the method.
func (m Method) Func() (func(x, y []float64) (float64, error), error) {
	switch m {
	case Spearman:
		return SpearmanCorr, nil
	case Pearson:
		return PearsonCorr, nil
	case Kendall:
		return KendallCorr, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, int(m))
}
