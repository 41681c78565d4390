package browser

import (
	"fmt"
	"strings"

	"bank_e2e/domain/entities"
)

// implicitRoles - tags that carry an ARIA role without a role attribute
var implicitRoles = map[string][]string{
	"button":   {"button", "input[@type='button' or @type='submit' or @type='reset']"},
	"link":     {"a[@href]"},
	"textbox":  {"input[not(@type) or @type='text' or @type='email' or @type='number']", "textarea"},
	"combobox": {"select"},
	"table":    {"table"},
	"row":      {"tr"},
	"cell":     {"td"},
	"heading":  {"h1", "h2", "h3", "h4", "h5", "h6"},
}

// roleXPath - an XPath for role+name, following the accessible-name rules
// the demo app needs: element text, value for inputs, aria-label
func roleXPath(role, name string, exact bool) string {
	var alternatives []string
	alternatives = append(alternatives, fmt.Sprintf("*[@role=%s]", entities.XPathLiteral(role)))
	for _, tag := range implicitRoles[role] {
		alternatives = append(alternatives, tag)
	}

	var parts []string
	for _, alt := range alternatives {
		step := "//" + alt
		if name != "" {
			step += "[" + nameMatch(name, exact) + "]"
		}
		parts = append(parts, step)
	}
	return strings.Join(parts, " | ")
}

func nameMatch(name string, exact bool) string {
	lit := entities.XPathLiteral(name)
	if exact {
		return fmt.Sprintf("normalize-space(.)=%[1]s or @value=%[1]s or @aria-label=%[1]s", lit)
	}
	lower := entities.XPathLiteral(strings.ToLower(name))
	return fmt.Sprintf("contains(translate(normalize-space(.), 'ABCDEFGHIJKLMNOPQRSTUVWXYZ', 'abcdefghijklmnopqrstuvwxyz'), %s) or contains(@value, %s)", lower, lit)
}

// textXPath - elements whose own text contains (or equals) text
func textXPath(text string, exact bool) string {
	lit := entities.XPathLiteral(text)
	if exact {
		return fmt.Sprintf("//*[text()[normalize-space(.)=%s]]", lit)
	}
	return fmt.Sprintf("//*[text()[contains(normalize-space(.), %s)]]", lit)
}

// placeholderXPath - inputs by placeholder
func placeholderXPath(text string, exact bool) string {
	lit := entities.XPathLiteral(text)
	if exact {
		return fmt.Sprintf("//*[@placeholder=%s]", lit)
	}
	return fmt.Sprintf("//*[contains(@placeholder, %s)]", lit)
}

// seleniumQuery - the lookup a selenium driver runs for one selector step
func seleniumQuery(s entities.Selector) (by, value string) {
	switch s.Strategy {
	case entities.StrategyRole:
		return "xpath", roleXPath(s.Role, s.Value, s.Exact)
	case entities.StrategyPlaceholder:
		return "xpath", placeholderXPath(s.Value, s.Exact)
	case entities.StrategyText:
		return "xpath", textXPath(s.Value, s.Exact)
	case entities.StrategyXPath:
		return "xpath", s.Value
	default:
		// css and row: rows are narrowed by text after lookup
		return "css selector", s.Value
	}
}

// scoped - makes every branch of a union XPath relative to the context node
func scoped(xpath string) string {
	branches := strings.Split(xpath, " | ")
	for i, b := range branches {
		branches[i] = relativeXPath(strings.TrimSpace(b))
	}
	return strings.Join(branches, " | ")
}
