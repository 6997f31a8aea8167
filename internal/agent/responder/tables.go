package responder

import "github.com/chative-support-desk/server/internal/agent/model"

// defaultTables holds the canned answers per business category, first match wins.
var defaultTables = map[model.Category][]Rule{
	model.CategoryComplaints: {
		{
			Name:  "late_delivery",
			Match: AnyOf("late", "not delivered"),
			Template: "We're sorry for the issue with your order (Order ID: {order_id}). " +
				"Please check the tracking details on our website using your order ID. " +
				"As a gesture of goodwill, we've applied a 10% discount code (DELAY10) to your next order.",
			Escalation: OnNegativeWithoutOrder,
		},
		{
			Name:  "wrong_item",
			Match: AnyOf("wrong item", "incomplete"),
			Template: "We apologize for receiving the wrong or incomplete order (Order ID: {order_id}). " +
				"Please initiate a return or replacement via the 'Returns' section on our website with your order ID.",
			Escalation: OnNegativeWithoutOrder,
		},
		{
			Name:  "poor_quality",
			Match: AnyOf("damaged", "stale", "poor quality"),
			Template: "We apologize for the poor quality of your order (Order ID: {order_id}). " +
				"Please report this via the 'Returns' section on our website to initiate a refund or replacement.",
			Escalation: OnNegativeWithoutOrder,
		},
		{
			Name:  "staff_conduct",
			Match: AnyOf("rude", "unprofessional"),
			Template: "We're sorry for your experience with our service provider. " +
				"Please file a complaint via the 'Support' section on our website, and we'll investigate promptly.",
			Escalation: Always,
		},
		{
			Name:  "silent_cancellation",
			Match: AnyOf("canceled without notification"),
			Template: "We apologize for the cancellation of your order (Order ID: {order_id}) without notification. " +
				"This issue requires further investigation.",
			Escalation: Always,
		},
		{
			Name:  "service_unavailable",
			Match: AnyOf("service unavailable"),
			Template: "We're sorry, our service is currently unavailable in your area. " +
				"Please check the 'Service Areas' section on our website for updates on expansion.",
			Escalation: OnNegative,
		},
		{
			Name: "fallback",
			Template: "We apologize for the issue with your order (Order ID: {order_id}). " +
				"Please provide more details about your complaint to assist you better.",
			Escalation: Always,
		},
	},

	model.CategoryRefunds: {
		{
			Name:  "canceled_order",
			Match: AnyOf("canceled", "undelivered"),
			Template: "To request a refund for your canceled or undelivered order (Order ID: {order_id}), visit the 'Refund' section on our website and submit a request with your order ID. " +
				"Refunds are processed within 3-5 business days.",
			Escalation: OnNegativeWithoutOrder,
		},
		{
			Name:       "refund_timeline",
			Match:      AnyOf("when will i receive my refund", "how will it be processed"),
			Template:   "Refunds for Order ID: {order_id} are processed within 3-5 business days via the original payment method (e.g., bKash, bank transfer) or as a voucher, depending on your preference.",
			Escalation: Never,
		},
		{
			Name:  "refund_missing",
			Match: AnyOf("haven't received my refund"),
			Template: "We're sorry for the delay in processing your refund (Order ID: {order_id}). " +
				"Please check the 'Refund Status' section on our website or provide more details for assistance.",
			Escalation: OnNegative,
		},
		{
			Name:       "poor_quality",
			Match:      AnyOf("poor quality"),
			Template:   "For a refund due to poor quality (Order ID: {order_id}), please submit a request via the 'Refund' section on our website with details and photos of the issue.",
			Escalation: OnNegativeWithoutOrder,
		},
		{
			Name:  "fees_and_tips",
			Match: AnyOf("delivery fees", "tips refundable"),
			Template: "Delivery fees and tips are refundable only if the order was not delivered or canceled before dispatch (Order ID: {order_id}). " +
				"Please check our refund policy on the website.",
			Escalation: Never,
		},
		{
			Name:  "conditions",
			Match: AnyOf("conditions"),
			Template: "Refunds are available for canceled, undelivered, or poor-quality orders (Order ID: {order_id}). " +
				"Please review our refund policy in the 'Support' section on our website.",
			Escalation: Never,
		},
		{
			Name:       "fallback",
			Template:   "To request a refund (Order ID: {order_id}), visit the 'Refund' section on our website and follow the instructions.",
			Escalation: OnNegative,
		},
	},

	model.CategoryDelivery: {
		{
			Name:       "track_order",
			Match:      AnyOf("where is my order", "track"),
			Template:   "To track your order (Order ID: {order_id}), visit the 'Track Order' section on our website or app for real-time updates.",
			Escalation: OnNegativeWithoutOrder,
		},
		{
			Name:  "delayed",
			Match: AnyOf("delayed", "when will it arrive"),
			Template: "We apologize for the delay in your order (Order ID: {order_id}). " +
				"Please check the tracking details on our website. " +
				"As a gesture of goodwill, use code DELAY10 for a 10% discount on your next order.",
			Escalation: OnNegativeWithoutOrder,
		},
		{
			Name:  "address_not_found",
			Match: AnyOf("couldn't find my address"),
			Template: "We're sorry the rider couldn't find your address for Order ID: {order_id}. " +
				"Please verify your address in the 'Profile' section or contact the rider via the app.",
			Escalation: OnNegative,
		},
		{
			Name:  "change_address",
			Match: AnyOf("change my delivery address"),
			Template: "To change your delivery address for Order ID: {order_id}, visit the 'Order Details' section on our website or app before dispatch. " +
				"Contact support if the order is already in transit.",
			Escalation: Never,
		},
		{
			Name:  "unavailable_to_receive",
			Match: AnyOf("not available to receive"),
			Template: "If you're unavailable to receive your delivery (Order ID: {order_id}), our rider will attempt redelivery. " +
				"Check our delivery policy on the website for details.",
			Escalation: Never,
		},
		{
			Name:  "marked_completed",
			Match: AnyOf("marked as completed"),
			Template: "We're sorry your order (Order ID: {order_id}) was marked as completed but not received. " +
				"This issue requires further investigation.",
			Escalation: Always,
		},
		{
			Name:       "fallback",
			Template:   "For delivery issues with Order ID: {order_id}, please check the 'Track Order' section on our website or provide more details.",
			Escalation: OnNegative,
		},
	},

	model.CategoryPayments: {
		{
			Name:  "incorrect_charge",
			Match: AnyOf("incorrectly", "without permission"),
			Template: "We're sorry for the incorrect charge on Order ID: {order_id}. " +
				"Please verify the transaction details in your account or provide more information for investigation.",
			Escalation: Always,
		},
		{
			Name:  "payment_methods",
			Match: AnyOf("how do i pay", "bkash", "credit card", "cash-on-delivery"),
			Template: "You can pay using bKash, credit/debit cards, or cash-on-delivery. " +
				"Select your preferred method in the 'Payments' section during checkout for Order ID: {order_id}.",
			Escalation: Never,
		},
		{
			Name:  "method_declined",
			Match: AnyOf("not working", "declined"),
			Template: "If your payment method for Order ID: {order_id} is not working, ensure sufficient funds and correct details. " +
				"Try another method or contact your bank.",
			Escalation: OnNegative,
		},
		{
			Name:  "split_payment",
			Match: AnyOf("multiple payment methods"),
			Template: "Currently, we do not support multiple payment methods for a single order (Order ID: {order_id}). " +
				"Please select one method during checkout.",
			Escalation: Never,
		},
		{
			Name:  "additional_fees",
			Match: AnyOf("additional fees"),
			Template: "Additional fees (e.g., delivery, platform, VAT) for Order ID: {order_id} are listed at checkout. " +
				"Review our fee structure in the 'Support' section.",
			Escalation: Never,
		},
		{
			Name:       "overcharge_refund",
			Match:      AnyOf("refund for incorrect payment", "overcharge"),
			Template:   "To request a refund for an incorrect payment or overcharge (Order ID: {order_id}), submit a request in the 'Refund' section on our website.",
			Escalation: OnNegative,
		},
		{
			Name:       "fallback",
			Template:   "For payment issues with Order ID: {order_id}, visit the 'Payments' section on our website or provide more details.",
			Escalation: OnNegative,
		},
	},

	model.CategoryAccount: {
		{
			Name:       "sign_up_login",
			Match:      AnyOf("create", "log in"),
			Template:   "To create or log into your account, visit the 'Sign Up' or 'Login' page on our website or app and follow the instructions.",
			Escalation: Never,
		},
		{
			Name:       "password_reset",
			Match:      AnyOf("forgot my password", "reset"),
			Template:   "To reset your password, go to the 'Login' page on our website, click 'Forgot Password,' and follow the steps to receive a reset link.",
			Escalation: Never,
		},
		{
			Name:       "locked",
			Match:      AnyOf("locked", "suspended"),
			Template:   "If your account is locked or suspended, please check your email for details or provide more information for assistance.",
			Escalation: Always,
		},
		{
			Name:       "update_profile",
			Match:      AnyOf("update", "change"),
			Template:   "To update your account details (e.g., phone number, email, address), log in and navigate to the 'Profile' section on our website or app.",
			Escalation: Never,
		},
		{
			Name:  "feature_access",
			Match: AnyOf("access certain features"),
			Template: "If you can't access certain features, ensure your account is verified and meets the requirements. " +
				"Check the 'Help' section or provide more details.",
			Escalation: OnNegative,
		},
		{
			Name:       "delete_account",
			Match:      AnyOf("delete my account", "remove payment information"),
			Template:   "To delete your account or remove payment information, visit the 'Account Settings' section and follow the instructions.",
			Escalation: Never,
		},
		{
			Name:       "fallback",
			Template:   "For account-related issues, visit the 'Account' section on our website or provide more details for assistance.",
			Escalation: OnNegative,
		},
	},

	model.CategoryPromotions: {
		{
			Name:       "apply_voucher",
			Match:      AnyOf("apply a voucher", "promo code"),
			Template:   "To apply a voucher or promo code to Order ID: {order_id}, enter the code at checkout in the 'Promotions' section on our website or app.",
			Escalation: Never,
		},
		{
			Name:  "voucher_invalid",
			Match: AllOf(AnyOf("voucher"), AnyOf("not working", "invalid")),
			Template: "We're sorry your voucher for Order ID: {order_id} isn't working. Ensure the code is valid and meets the terms. " +
				"Try code WELCOME10 for a 10% discount on your next order.",
			Escalation: OnNegative,
		},
		{
			Name:       "terms",
			Match:      AnyOf("terms and conditions"),
			Template:   "Promotion terms are listed in the 'Offers' section on our website. Ensure your order meets the criteria (e.g., minimum spend, validity).",
			Escalation: Never,
		},
		{
			Name:       "multiple_vouchers",
			Match:      AnyOf("multiple vouchers"),
			Template:   "Currently, only one voucher or discount can be applied per order (Order ID: {order_id}). Check the 'Offers' section for details.",
			Escalation: Never,
		},
		{
			Name:       "eligibility",
			Match:      AnyOf("eligible"),
			Template:   "To check promotion eligibility for Order ID: {order_id}, review the terms in the 'Offers' section or verify your account status.",
			Escalation: Never,
		},
		{
			Name:  "discount_missing",
			Match: AnyOf("cashback", "discount not applied"),
			Template: "If your cashback or discount for Order ID: {order_id} was not applied, ensure the promotion was valid at checkout. " +
				"Please provide more details for assistance.",
			Escalation: OnNegative,
		},
		{
			Name:       "fallback",
			Template:   "For promotion inquiries for Order ID: {order_id}, visit the 'Offers' section on our website or provide more details.",
			Escalation: OnNegative,
		},
	},

	model.CategoryGeneral: {
		{
			Name:  "services",
			Match: AnyOf("services"),
			Template: "We offer a wide range of Aarong clothing, including traditional and modern apparel. " +
				"Explore all products on our website or app.",
			Escalation: Never,
		},
		{
			Name:       "place_order",
			Match:      AnyOf("place an order", "transaction"),
			Template:   "To place an order, select your clothing items on our website or app, add to cart, and proceed to checkout.",
			Escalation: Never,
		},
		{
			Name:       "opening_hours",
			Match:      AnyOf("operating hours", "service availability"),
			Template:   "Our online store is available 24/7. Physical stores are open from 10 AM to 8 PM daily.",
			Escalation: Never,
		},
		{
			Name:       "contact_support",
			Match:      AnyOf("contact customer support"),
			Template:   "You can reach us via this chatbot, email at support@aarong.com, or call our helpline at +880-123-456-7890.",
			Escalation: Never,
		},
		{
			Name:       "delivery_areas",
			Match:      AnyOf("service available", "delivery areas"),
			Template:   "Check available delivery areas in the 'Shipping Info' section on our website or app.",
			Escalation: Never,
		},
		{
			Name:       "terms",
			Match:      AnyOf("terms and conditions"),
			Template:   "Our terms and conditions are available in the 'Terms' section on our website. Please review them for details.",
			Escalation: Never,
		},
		{
			Name:       "fallback",
			Template:   "Thank you for reaching out! Please provide more details about your query, and we'll assist you promptly.",
			Escalation: OnNegative,
		},
	},

	// The escalation rows only pick the policy; the hand-off text itself is
	// produced by the escalation resolver.
	model.CategoryEscalation: {
		{
			Name:       "live_agent",
			Match:      AnyOf("live agent", "escalate"),
			Template:   "Your query is being forwarded to a live agent.",
			Escalation: Always,
		},
		{
			Name:  "response_time",
			Match: AllOf(AnyOf("how long"), AnyOf("respond")),
			Template: "A customer service representative will respond within 24-48 hours for Order ID: {order_id}. " +
				"Please provide your order ID when contacted.",
			Escalation: Never,
		},
		{
			Name:       "fallback",
			Template:   "Your query is being forwarded to a live agent.",
			Escalation: Always,
		},
	},
}
