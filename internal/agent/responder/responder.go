// Package responder turns a classified query into a canned answer. Every
// business category owns an ordered rule table evaluated first-match-wins.
package responder

import (
	"fmt"

	"github.com/chative-support-desk/server/internal/agent/model"
)

// Reply is the outcome of one responder call.
type Reply struct {
	Text     string
	Escalate bool
	// Rule is the name of the matched row, for logs and tests.
	Rule string
}

// Responder evaluates rule tables. The zero value is not usable, see New and Default.
type Responder struct {
	tables map[model.Category][]Rule
}

// New validates tables and returns a Responder over them. Every business
// category needs a non-empty table whose last row is a fallback.
func New(tables map[model.Category][]Rule) (*Responder, error) {
	for _, c := range model.BusinessCategories() {
		rules := tables[c]
		if len(rules) == 0 {
			return nil, fmt.Errorf("responder: no rules for category %s", c)
		}
		if last := rules[len(rules)-1]; last.Match != nil {
			return nil, fmt.Errorf("responder: category %s has no fallback rule", c)
		}
	}
	return &Responder{tables: tables}, nil
}

var std = &Responder{tables: defaultTables}

// Default returns the responder over the built-in tables.
func Default() *Responder {
	return std
}

// Rules returns the table used for category. Unknown categories and
// Default use the General table.
func (r *Responder) Rules(category model.Category) []Rule {
	if rules, ok := r.tables[category]; ok {
		return rules
	}
	return r.tables[model.CategoryGeneral]
}

// Respond is pure: the same inputs always produce the same Reply.
func (r *Responder) Respond(category model.Category, query string, s model.Sentiment, orderID model.OrderID) Reply {
	q := normalize(query)
	if !orderID.Present() {
		orderID = model.NoOrderID
	}
	for _, rule := range r.Rules(category) {
		if !rule.matches(q) {
			continue
		}
		return Reply{
			Text:     rule.Render(orderID),
			Escalate: rule.Escalation.Escalate(s, orderID),
			Rule:     rule.Name,
		}
	}
	// unreachable with validated tables
	return Reply{Escalate: true, Rule: "none"}
}

// Respond answers with the built-in tables.
func Respond(category model.Category, query string, s model.Sentiment, orderID model.OrderID) Reply {
	return std.Respond(category, query, s, orderID)
}
