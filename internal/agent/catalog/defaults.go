package catalog

import "github.com/chative-support-desk/server/internal/agent/model"

// defaultQueries is the fixed example set synthesized when no catalog file exists.
var defaultQueries = []model.CatalogEntry{
	{Query: "What services do you offer?", Category: "General", ExpectedResponse: "We offer a wide range of Aarong clothing, including traditional and modern apparel."},
	{Query: "How can I place an order?", Category: "General", ExpectedResponse: "Visit our website or app, select your clothing items, and follow the checkout process."},
	{Query: "What are your operating hours?", Category: "General", ExpectedResponse: "Our online store is available 24/7. Physical stores are open 10 AM to 8 PM."},
	{Query: "How do I contact customer support?", Category: "General", ExpectedResponse: "Use this chatbot, email support@aarong.com, or call +880-123-456-7890."},
	{Query: "Where is your service available?", Category: "General", ExpectedResponse: "Check delivery areas on our website's 'Shipping Info' section."},
	{Query: "What are your terms and conditions?", Category: "General", ExpectedResponse: "View our terms on the 'Terms' page of our website."},
	{Query: "Why was my order delivered late?", Category: "Complaints", ExpectedResponse: "Check tracking or escalate if no order ID."},
	{Query: "I received the wrong item.", Category: "Complaints", ExpectedResponse: "Initiate a return or replacement."},
	{Query: "The product was damaged.", Category: "Complaints", ExpectedResponse: "Initiate a return or refund."},
	{Query: "The staff was rude.", Category: "Complaints", ExpectedResponse: "File a complaint via website."},
	{Query: "Why was my order canceled?", Category: "Complaints", ExpectedResponse: "Escalate for investigation."},
	{Query: "Why is delivery unavailable in my area?", Category: "Complaints", ExpectedResponse: "Check service availability or escalate."},
	{Query: "How do I request a refund?", Category: "Refunds", ExpectedResponse: "Submit a refund request via website."},
	{Query: "When will I receive my refund?", Category: "Refunds", ExpectedResponse: "Provide refund processing details."},
	{Query: "Why haven’t I received my refund?", Category: "Refunds", ExpectedResponse: "Check refund status or escalate."},
	{Query: "Can I get a refund for a defective product?", Category: "Refunds", ExpectedResponse: "Initiate refund for poor quality."},
	{Query: "Are delivery fees refundable?", Category: "Refunds", ExpectedResponse: "Explain refund policy for fees."},
	{Query: "What are the refund conditions?", Category: "Refunds", ExpectedResponse: "Provide refund conditions."},
	{Query: "Where is my order?", Category: "Delivery", ExpectedResponse: "Track order on website."},
	{Query: "Why is my delivery delayed?", Category: "Delivery", ExpectedResponse: "Check tracking or offer discount."},
	{Query: "The rider couldn’t find my address.", Category: "Delivery", ExpectedResponse: "Update address or contact rider."},
	{Query: "Can I change my delivery address?", Category: "Delivery", ExpectedResponse: "Guide to change address."},
	{Query: "What if I’m not available for delivery?", Category: "Delivery", ExpectedResponse: "Explain delivery retry policy."},
	{Query: "Delivery marked completed but not received.", Category: "Delivery", ExpectedResponse: "Escalate for investigation."},
	{Query: "Why was I charged incorrectly?", Category: "Payments", ExpectedResponse: "Verify charge or escalate."},
	{Query: "How do I pay using bKash?", Category: "Payments", ExpectedResponse: "Guide on payment methods."},
	{Query: "Why is my payment method declined?", Category: "Payments", ExpectedResponse: "Troubleshoot payment issue."},
	{Query: "Can I use multiple payment methods?", Category: "Payments", ExpectedResponse: "Explain payment method policy."},
	{Query: "Why was I charged extra fees?", Category: "Payments", ExpectedResponse: "Explain fee structure."},
	{Query: "How do I refund an overcharge?", Category: "Payments", ExpectedResponse: "Guide to refund for overcharge."},
	{Query: "How do I log into my account?", Category: "Account", ExpectedResponse: "Guide to account creation/login."},
	{Query: "How do I reset my password?", Category: "Account", ExpectedResponse: "Reset password via website."},
	{Query: "Why is my account locked?", Category: "Account", ExpectedResponse: "Explain account status or escalate."},
	{Query: "How do I update my account details?", Category: "Account", ExpectedResponse: "Update details in profile."},
	{Query: "Why can’t I access some features?", Category: "Account", ExpectedResponse: "Troubleshoot account access."},
	{Query: "How do I delete my account?", Category: "Account", ExpectedResponse: "Guide to account deletion."},
	{Query: "How do I apply a promo code?", Category: "Promotions", ExpectedResponse: "Guide to apply promo code."},
	{Query: "Why isn’t my promo code working?", Category: "Promotions", ExpectedResponse: "Troubleshoot promo code issue."},
	{Query: "What are the promo terms?", Category: "Promotions", ExpectedResponse: "Provide promotion terms."},
	{Query: "Can I use multiple vouchers?", Category: "Promotions", ExpectedResponse: "Explain voucher stacking policy."},
	{Query: "Am I eligible for a discount?", Category: "Promotions", ExpectedResponse: "Check promotion eligibility."},
	{Query: "Why was my discount not applied?", Category: "Promotions", ExpectedResponse: "Investigate cashback issue."},
	{Query: "I need a live agent.", Category: "Escalation", ExpectedResponse: "Escalate to live agent."},
	{Query: "The chatbot didn’t help.", Category: "Escalation", ExpectedResponse: "Escalate to live agent."},
	{Query: "How long for a representative to respond?", Category: "Escalation", ExpectedResponse: "Provide response time estimate."},
}

var defaultAgents = []model.Agent{
	{Name: "Agent John", ContactNumber: "+880-1234-567890", Specialty: "Complaints, Refunds"},
	{Name: "Agent Sarah", ContactNumber: "+880-9876-543210", Specialty: "Delivery, Payments"},
	{Name: "Agent Ayesha", ContactNumber: "+880-5555-123456", Specialty: "Account, Promotions, General, Escalation"},
}

// Default returns a fresh copy of the built-in catalog.
func Default() *model.Catalog {
	c := &model.Catalog{
		Queries: make([]model.CatalogEntry, len(defaultQueries)),
		Agents:  make([]model.Agent, len(defaultAgents)),
	}
	copy(c.Queries, defaultQueries)
	copy(c.Agents, defaultAgents)
	return c
}
