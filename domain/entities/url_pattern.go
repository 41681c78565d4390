package entities

import (
	"fmt"
	"regexp"
	"strings"
)

// URLPattern matches page URLs either by playwright-style glob ("**/login")
// or by an unanchored regular expression (".*#/account").
type URLPattern struct {
	Glob  string `json:"glob,omitempty"`
	Regex string `json:"regex,omitempty"`
}

// Glob - pattern where ** spans slashes and * stops at them
func Glob(pattern string) URLPattern {
	return URLPattern{Glob: pattern}
}

// Regex - unanchored regular expression
func Regex(expr string) URLPattern {
	return URLPattern{Regex: expr}
}

// Regexp compiles the pattern. Globs are anchored at both ends.
func (p URLPattern) Regexp() (*regexp.Regexp, error) {
	if p.Regex != "" {
		re, err := regexp.Compile(p.Regex)
		if err != nil {
			return nil, fmt.Errorf("invalid url regex %q: %w", p.Regex, err)
		}
		return re, nil
	}
	if p.Glob == "" {
		return nil, fmt.Errorf("empty url pattern")
	}
	return regexp.Compile(globToRegex(p.Glob))
}

// Match reports whether url satisfies the pattern
func (p URLPattern) Match(url string) (bool, error) {
	re, err := p.Regexp()
	if err != nil {
		return false, err
	}
	return re.MatchString(url), nil
}

func (p URLPattern) String() string {
	if p.Regex != "" {
		return "/" + p.Regex + "/"
	}
	return p.Glob
}

func globToRegex(glob string) string {
	var b strings.Builder
	b.WriteByte('^')
	inGroup := false
	for i := 0; i < len(glob); i++ {
		c := glob[i]
		switch {
		case c == '*' && i+1 < len(glob) && glob[i+1] == '*':
			b.WriteString(".*")
			i++
		case c == '*':
			b.WriteString("[^/]*")
		case c == '?':
			b.WriteByte('.')
		case c == '{':
			inGroup = true
			b.WriteString("(")
		case c == '}' && inGroup:
			inGroup = false
			b.WriteString(")")
		case c == ',' && inGroup:
			b.WriteByte('|')
		case c == '\\' && i+1 < len(glob):
			b.WriteString(regexp.QuoteMeta(string(glob[i+1])))
			i++
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	b.WriteByte('$')
	return b.String()
}
