package responder

import (
	"strings"

	"github.com/chative-support-desk/server/internal/agent/model"
)

// Policy decides whether a matched rule hands the turn to a human agent.
type Policy int

const (
	Never Policy = iota
	Always
	// OnNegative escalates negative-sentiment turns.
	OnNegative
	// OnNegativeWithoutOrder escalates negative-sentiment turns that carry no order id.
	OnNegativeWithoutOrder
)

func (p Policy) String() string {
	switch p {
	case Never:
		return "never"
	case Always:
		return "always"
	case OnNegative:
		return "on_negative"
	case OnNegativeWithoutOrder:
		return "on_negative_without_order"
	}
	return "unknown"
}

// Escalate evaluates the policy for one turn.
func (p Policy) Escalate(s model.Sentiment, orderID model.OrderID) bool {
	switch p {
	case Always:
		return true
	case OnNegative:
		return s == model.SentimentNegative
	case OnNegativeWithoutOrder:
		return s == model.SentimentNegative && !orderID.Present()
	}
	return false
}

// Matcher is a predicate over a normalized query.
type Matcher func(query string) bool

// AnyOf matches when the query contains at least one of the phrases.
func AnyOf(phrases ...string) Matcher {
	return func(q string) bool {
		for _, p := range phrases {
			if strings.Contains(q, p) {
				return true
			}
		}
		return false
	}
}

// AllOf matches when every matcher matches.
func AllOf(ms ...Matcher) Matcher {
	return func(q string) bool {
		for _, m := range ms {
			if !m(q) {
				return false
			}
		}
		return true
	}
}

// Rule is one row of a category table. A nil Match always matches and is
// used for the trailing fallback row.
type Rule struct {
	Name       string
	Match      Matcher
	Template   string
	Escalation Policy
}

func (r Rule) matches(q string) bool {
	return r.Match == nil || r.Match(q)
}

// Render substitutes {order_id} into the template.
func (r Rule) Render(orderID model.OrderID) string {
	return strings.ReplaceAll(r.Template, "{order_id}", string(orderID))
}

// normalize lower-cases q and folds typographic apostrophes so that
// "haven’t" and "haven't" hit the same rule.
func normalize(q string) string {
	q = strings.ToLower(strings.TrimSpace(q))
	return strings.NewReplacer("’", "'", "‘", "'").Replace(q)
}
