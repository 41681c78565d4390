package entities

import (
	"fmt"
	"strings"
)

// Strategy identifies how a Selector finds its target nodes
type Strategy string

const (
	StrategyRole        Strategy = "role"
	StrategyCSS         Strategy = "css"
	StrategyXPath       Strategy = "xpath"
	StrategyPlaceholder Strategy = "placeholder"
	StrategyText        Strategy = "text"
	StrategyRow         Strategy = "row" // table row containing every substring in Contains
)

// Position narrows a match set down structurally
type Position int

const (
	PositionAll Position = iota
	PositionFirst
	PositionLast
	PositionNth
)

// Selector describes an element without resolving it. Drivers turn it into
// a live query only when an action or check runs.
type Selector struct {
	Strategy Strategy `json:"strategy"`
	Role     string   `json:"role,omitempty"`
	Value    string   `json:"value,omitempty"`
	Contains []string `json:"contains,omitempty"`
	Exact    bool     `json:"exact,omitempty"`
	Position Position `json:"position,omitempty"`
	Index    int      `json:"index,omitempty"`
}

// ByRole - accessible role plus accessible name, matched exactly
func ByRole(role, name string) Selector {
	return Selector{Strategy: StrategyRole, Role: role, Value: name, Exact: true}
}

// ByCSS - plain CSS selector
func ByCSS(css string) Selector {
	return Selector{Strategy: StrategyCSS, Value: css}
}

// ByXPath - XPath expression
func ByXPath(xpath string) Selector {
	return Selector{Strategy: StrategyXPath, Value: xpath}
}

// ByPlaceholder - input placeholder text
func ByPlaceholder(text string) Selector {
	return Selector{Strategy: StrategyPlaceholder, Value: text, Exact: true}
}

// ByText - visible text, substring match
func ByText(text string) Selector {
	return Selector{Strategy: StrategyText, Value: text}
}

// RowContaining - table body rows whose text contains every part
func RowContaining(parts ...string) Selector {
	return Selector{Strategy: StrategyRow, Value: "tbody tr", Contains: parts}
}

// Nth returns a copy narrowed to the zero-based index in DOM order
func (s Selector) Nth(index int) Selector {
	s.Position = PositionNth
	s.Index = index
	return s
}

// First returns a copy narrowed to the first match
func (s Selector) First() Selector {
	s.Position = PositionFirst
	s.Index = 0
	return s
}

// Last returns a copy narrowed to the last match
func (s Selector) Last() Selector {
	s.Position = PositionLast
	s.Index = 0
	return s
}

// Validate reports selectors no driver could resolve
func (s Selector) Validate() error {
	switch s.Strategy {
	case StrategyRole:
		if s.Role == "" {
			return fmt.Errorf("role selector needs a role")
		}
	case StrategyCSS, StrategyXPath, StrategyPlaceholder, StrategyText:
		if s.Value == "" {
			return fmt.Errorf("%s selector needs a value", s.Strategy)
		}
	case StrategyRow:
		if len(s.Contains) == 0 {
			return fmt.Errorf("row selector needs at least one substring")
		}
	default:
		return fmt.Errorf("unknown selector strategy %q", s.Strategy)
	}
	if s.Position == PositionNth && s.Index < 0 {
		return fmt.Errorf("negative index %d", s.Index)
	}
	return nil
}

func (s Selector) String() string {
	var b strings.Builder
	switch s.Strategy {
	case StrategyRole:
		fmt.Fprintf(&b, "role=%s[name=%q]", s.Role, s.Value)
	case StrategyRow:
		fmt.Fprintf(&b, "%s:has-text(%s)", s.Value, strings.Join(quoteAll(s.Contains), ","))
	default:
		fmt.Fprintf(&b, "%s=%s", s.Strategy, s.Value)
	}
	switch s.Position {
	case PositionFirst:
		b.WriteString(" >> first")
	case PositionLast:
		b.WriteString(" >> last")
	case PositionNth:
		fmt.Fprintf(&b, " >> nth=%d", s.Index)
	}
	return b.String()
}

func quoteAll(parts []string) []string {
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = fmt.Sprintf("%q", p)
	}
	return out
}

// XPathLiteral quotes s for XPath 1.0, which has no escape sequences
func XPathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	quoted := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		quoted = append(quoted, "'"+p+"'")
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}
