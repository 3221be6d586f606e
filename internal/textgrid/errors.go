package textgrid

import (
	"errors"
	"fmt"
)

var (
	ErrParse          = errors.New("malformed TextGrid")
	ErrValidation     = errors.New("invalid TextGrid")
	ErrLengthMismatch = errors.New("column length mismatch")
	ErrMixedTierKind  = errors.New("tier mixes interval and point rows")
	ErrPointExtent    = errors.New("point entry with non-zero width")
)

// IOError reports a file that could not be read or written.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ParseError reports a structural or syntactic failure. Line is 1-based, 0
// when the failure is not tied to a line (e.g. unexpected end of input).
type ParseError struct {
	Path  string
	Line  int
	Field string
	Msg   string
	Err   error
}

func (e *ParseError) Error() string {
	loc := e.Path
	if e.Line > 0 {
		if loc != "" {
			loc += ":"
		}
		loc += fmt.Sprintf("line %d", e.Line)
	}
	msg := e.Msg
	if e.Field != "" {
		msg = fmt.Sprintf("field %q: %s", e.Field, msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if loc == "" {
		return fmt.Sprintf("%s: %s", ErrParse, msg)
	}
	return fmt.Sprintf("%s: %s: %s", ErrParse, loc, msg)
}

func (e *ParseError) Is(target error) bool { return target == ErrParse }

func (e *ParseError) Unwrap() error { return e.Err }

// validation rule that failed
type Rule string

const (
	RuleDomain      Rule = "tmin must not exceed tmax"
	RuleTierDomain  Rule = "tier tmin must not exceed tier tmax"
	RuleEntryBounds Rule = "interval start must not exceed end"
	RuleOverlap     Rule = "intervals must not overlap"
	RulePointOrder  Rule = "point times must strictly increase"
	RuleStartAlign  Rule = "first interval must start at tier tmin"
	RuleEndAlign    Rule = "last interval must end at tier tmax"
	RuleGap         Rule = "intervals must be contiguous"
)

// ValidationError names the tier and entry that broke a rule. Tier and Entry
// are 0-based; Tier is -1 for TextGrid-level rules and Entry is -1 for
// tier-level rules.
type ValidationError struct {
	Tier     int
	TierName string
	Entry    int
	Rule     Rule
	Detail   string
}

func (e *ValidationError) Error() string {
	var where string
	switch {
	case e.Tier < 0:
		where = "textgrid"
	case e.Entry < 0:
		where = fmt.Sprintf("tier %d (%q)", e.Tier+1, e.TierName)
	default:
		where = fmt.Sprintf("tier %d (%q) entry %d", e.Tier+1, e.TierName, e.Entry+1)
	}
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s: %s", ErrValidation, where, e.Rule)
	}
	return fmt.Sprintf("%s: %s: %s (%s)", ErrValidation, where, e.Rule, e.Detail)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// VectorError wraps contract violations of the columnar and nested builders.
type VectorError struct {
	Kind error
	Msg  string
}

func (e *VectorError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *VectorError) Unwrap() error { return e.Kind }

func vectorErrorf(kind error, format string, args ...any) error {
	return &VectorError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
