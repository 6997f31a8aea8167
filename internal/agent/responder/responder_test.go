package responder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chative-support-desk/server/internal/agent/model"
)

func TestRespond(t *testing.T) {
	tests := []struct {
		name      string
		category  model.Category
		query     string
		sentiment model.Sentiment
		orderID   model.OrderID
		rule      string
		escalate  bool
		contains  []string
	}{
		{
			name:      "late delivery with order id stays with the bot",
			category:  model.CategoryComplaints,
			query:     "Why was my order delivered late? Order ID: 12345",
			sentiment: model.SentimentNegative,
			orderID:   "12345",
			rule:      "late_delivery",
			contains:  []string{"Order ID: 12345", "DELAY10"},
		},
		{
			name:      "late delivery without order id escalates when negative",
			category:  model.CategoryComplaints,
			query:     "My order was not delivered",
			sentiment: model.SentimentNegative,
			orderID:   model.NoOrderID,
			rule:      "late_delivery",
			escalate:  true,
			contains:  []string{"Order ID: None"},
		},
		{
			name:      "rude staff always escalates",
			category:  model.CategoryComplaints,
			query:     "The staff was rude",
			sentiment: model.SentimentPositive,
			orderID:   model.NoOrderID,
			rule:      "staff_conduct",
			escalate:  true,
		},
		{
			name:      "complaint fallback escalates",
			category:  model.CategoryComplaints,
			query:     "I am unhappy",
			sentiment: model.SentimentNeutral,
			orderID:   "A1",
			rule:      "fallback",
			escalate:  true,
			contains:  []string{"Order ID: A1"},
		},
		{
			name:      "typographic apostrophe matches refund rule",
			category:  model.CategoryRefunds,
			query:     "I haven’t received my refund yet",
			sentiment: model.SentimentNegative,
			orderID:   "777",
			rule:      "refund_missing",
			escalate:  true,
		},
		{
			name:      "refund timeline is informational",
			category:  model.CategoryRefunds,
			query:     "When will I receive my refund?",
			sentiment: model.SentimentNegative,
			orderID:   model.NoOrderID,
			rule:      "refund_timeline",
		},
		{
			name:      "delivery marked completed escalates",
			category:  model.CategoryDelivery,
			query:     "My order was marked as completed but I never got it",
			sentiment: model.SentimentNeutral,
			orderID:   "55",
			rule:      "marked_completed",
			escalate:  true,
		},
		{
			name:      "payment methods",
			category:  model.CategoryPayments,
			query:     "Can I pay with bKash?",
			sentiment: model.SentimentNeutral,
			orderID:   model.NoOrderID,
			rule:      "payment_methods",
			contains:  []string{"Order ID: None."},
		},
		{
			name:      "account locked",
			category:  model.CategoryAccount,
			query:     "My account is LOCKED",
			sentiment: model.SentimentNeutral,
			orderID:   model.NoOrderID,
			rule:      "locked",
			escalate:  true,
		},
		{
			name:      "voucher invalid needs both words",
			category:  model.CategoryPromotions,
			query:     "my voucher is invalid",
			sentiment: model.SentimentNegative,
			orderID:   "9",
			rule:      "voucher_invalid",
			escalate:  true,
			contains:  []string{"WELCOME10"},
		},
		{
			name:      "invalid without voucher falls through",
			category:  model.CategoryPromotions,
			query:     "the code is invalid",
			sentiment: model.SentimentNeutral,
			orderID:   "9",
			rule:      "fallback",
		},
		{
			name:      "general opening hours",
			category:  model.CategoryGeneral,
			query:     "What are your operating hours?",
			sentiment: model.SentimentNeutral,
			orderID:   model.NoOrderID,
			rule:      "opening_hours",
			contains:  []string{"24/7"},
		},
		{
			name:      "escalation response time",
			category:  model.CategoryEscalation,
			query:     "How long will it take for someone to respond?",
			sentiment: model.SentimentNeutral,
			orderID:   "42",
			rule:      "response_time",
			contains:  []string{"24-48 hours", "Order ID: 42"},
		},
		{
			name:      "escalation live agent",
			category:  model.CategoryEscalation,
			query:     "Please escalate this",
			sentiment: model.SentimentNeutral,
			orderID:   model.NoOrderID,
			rule:      "live_agent",
			escalate:  true,
		},
		{
			name:      "unknown category uses general table",
			category:  model.Category("Miscellaneous"),
			query:     "something odd",
			sentiment: model.SentimentNegative,
			orderID:   model.NoOrderID,
			rule:      "fallback",
			escalate:  true,
			contains:  []string{"provide more details"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := Respond(tt.category, tt.query, tt.sentiment, tt.orderID)
			assert.Equal(t, tt.rule, reply.Rule)
			assert.Equal(t, tt.escalate, reply.Escalate)
			assert.NotEmpty(t, reply.Text)
			assert.NotContains(t, reply.Text, "{order_id}")
			for _, want := range tt.contains {
				assert.Contains(t, reply.Text, want)
			}
		})
	}
}

func TestRespondEmptyOrderIDRendersSentinel(t *testing.T) {
	reply := Respond(model.CategoryRefunds, "refund please", model.SentimentNeutral, "")
	assert.Contains(t, reply.Text, "Order ID: None")
}

func TestRespondIsDeterministic(t *testing.T) {
	first := Respond(model.CategoryDelivery, "Where is my order?", model.SentimentNegative, model.NoOrderID)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Respond(model.CategoryDelivery, "Where is my order?", model.SentimentNegative, model.NoOrderID))
	}
}

func TestDefaultTablesEndWithFallback(t *testing.T) {
	for _, c := range model.BusinessCategories() {
		rules := Default().Rules(c)
		require.NotEmpty(t, rules, c)
		assert.Nil(t, rules[len(rules)-1].Match, "category %s", c)
		assert.Equal(t, "fallback", rules[len(rules)-1].Name, "category %s", c)
	}
}

func TestNewRejectsIncompleteTables(t *testing.T) {
	_, err := New(map[model.Category][]Rule{})
	assert.Error(t, err)

	tables := make(map[model.Category][]Rule)
	for _, c := range model.BusinessCategories() {
		tables[c] = []Rule{{Name: "only", Match: AnyOf("x"), Template: "x"}}
	}
	_, err = New(tables)
	assert.ErrorContains(t, err, "no fallback rule")

	for _, c := range model.BusinessCategories() {
		tables[c] = append(tables[c], Rule{Name: "fallback", Template: "ok"})
	}
	r, err := New(tables)
	require.NoError(t, err)
	assert.Equal(t, "ok", r.Respond(model.CategoryGeneral, "nothing", model.SentimentNeutral, model.NoOrderID).Text)
}

func TestPolicyEscalate(t *testing.T) {
	assert.False(t, Never.Escalate(model.SentimentNegative, model.NoOrderID))
	assert.True(t, Always.Escalate(model.SentimentPositive, "1"))
	assert.True(t, OnNegative.Escalate(model.SentimentNegative, "1"))
	assert.False(t, OnNegative.Escalate(model.SentimentNeutral, model.NoOrderID))
	assert.True(t, OnNegativeWithoutOrder.Escalate(model.SentimentNegative, model.NoOrderID))
	assert.False(t, OnNegativeWithoutOrder.Escalate(model.SentimentNegative, "1"))
}

func TestSmallTalk(t *testing.T) {
	for _, q := range []string{"Hi", " hello ", "HEY"} {
		reply, ok := SmallTalk(q)
		assert.True(t, ok, q)
		assert.Equal(t, GreetingReply, reply)
	}
	for _, q := range []string{"bye", "Goodbye", "thank you", "Thanks"} {
		reply, ok := SmallTalk(q)
		assert.True(t, ok, q)
		assert.Equal(t, FarewellReply, reply)
	}
	_, ok := SmallTalk("hi, my order is late")
	assert.False(t, ok)
}
