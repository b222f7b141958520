package extract

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
)

// Rule table errors.
var (
	ErrMissingField   = errors.New("missing required field")
	ErrInvalidPattern = errors.New("invalid pattern")
	ErrInvalidEnum    = errors.New("invalid enum value")
	ErrOutOfRange     = errors.New("value out of valid range")
)

// ValidateRules checks every rule and reports all problems at once.
func ValidateRules(r Rules) error {
	var errs []error

	for i, b := range r.Brands {
		if b.Name == "" {
			errs = append(errs, fmt.Errorf("brands[%d].name: %w", i, ErrMissingField))
		}
		switch b.Position {
		case "", PositionAny, PositionStart:
		default:
			errs = append(errs, fmt.Errorf("brands[%d].position %q: %w", i, b.Position, ErrInvalidEnum))
		}
	}

	for i, w := range r.Weights {
		errs = append(errs, validateWeight(i, w)...)
	}

	return errors.Join(errs...)
}

func validateWeight(i int, w WeightRule) []error {
	var errs []error

	if w.Pattern == "" {
		errs = append(errs, fmt.Errorf("weights[%d].pattern: %w", i, ErrMissingField))
	} else if re, err := regexp.Compile(w.Pattern); err != nil {
		errs = append(errs, fmt.Errorf("weights[%d].pattern %q: %w: %w", i, w.Pattern, ErrInvalidPattern, err))
	} else if re.NumSubexp() < 1 {
		errs = append(errs, fmt.Errorf("weights[%d].pattern %q: %w (needs a value capture group)",
			i, w.Pattern, ErrInvalidPattern))
	}

	if !slices.Contains(CanonicalUnits, w.Unit) {
		errs = append(errs, fmt.Errorf("weights[%d].unit %q: %w", i, w.Unit, ErrInvalidEnum))
	}

	if w.Factor < 0 {
		errs = append(errs, fmt.Errorf("weights[%d].factor %.2f: %w (must be >= 0)", i, w.Factor, ErrOutOfRange))
	}

	return errs
}
