package entities

import "fmt"

// ConditionKind is the state an element check waits for
type ConditionKind string

const (
	ConditionVisible      ConditionKind = "visible"
	ConditionHidden       ConditionKind = "hidden"
	ConditionEnabled      ConditionKind = "enabled"
	ConditionText         ConditionKind = "text"
	ConditionContainsText ConditionKind = "contains_text"
	ConditionCount        ConditionKind = "count"
	ConditionEmpty        ConditionKind = "empty"
	ConditionNotEmpty     ConditionKind = "not_empty"
)

// Condition is an expected element state, polled until it holds or times out
type Condition struct {
	Kind  ConditionKind `json:"kind"`
	Text  string        `json:"text,omitempty"`
	Count int           `json:"count,omitempty"`
}

func Visible() Condition              { return Condition{Kind: ConditionVisible} }
func Hidden() Condition               { return Condition{Kind: ConditionHidden} }
func Enabled() Condition              { return Condition{Kind: ConditionEnabled} }
func HasText(text string) Condition   { return Condition{Kind: ConditionText, Text: text} }
func ContainsText(s string) Condition { return Condition{Kind: ConditionContainsText, Text: s} }
func HasCount(n int) Condition        { return Condition{Kind: ConditionCount, Count: n} }
func Empty() Condition                { return Condition{Kind: ConditionEmpty} }
func NotEmpty() Condition             { return Condition{Kind: ConditionNotEmpty} }

// Expected renders the condition for failure messages
func (c Condition) Expected() string {
	switch c.Kind {
	case ConditionText:
		return fmt.Sprintf("text %q", c.Text)
	case ConditionContainsText:
		return fmt.Sprintf("text containing %q", c.Text)
	case ConditionCount:
		return fmt.Sprintf("%d element(s)", c.Count)
	case ConditionEmpty:
		return "empty"
	case ConditionNotEmpty:
		return "not empty"
	default:
		return string(c.Kind)
	}
}
