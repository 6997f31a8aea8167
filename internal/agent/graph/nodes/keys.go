package nodes

import "github.com/chative-support-desk/server/internal/agent/model"

const (
	NodeCategorize       = "Categorize"
	NodeAnalyzeSentiment = "AnalyzeSentiment"
	NodeExtractOrderID   = "ExtractOrderID"
	NodeRoute            = "Route"
	NodeEscalate         = "Escalate"
	NodeLogTurn          = "LogTurn"

	NodeHandleComplaints = "HandleComplaints"
	NodeHandleRefunds    = "HandleRefunds"
	NodeHandleDelivery   = "HandleDelivery"
	NodeHandlePayments   = "HandlePayments"
	NodeHandleAccount    = "HandleAccount"
	NodeHandlePromotions = "HandlePromotions"
	NodeHandleEscalation = "HandleEscalation"
	NodeHandleGeneral    = "HandleGeneral"
)

var handlerNodes = map[model.Category]string{
	model.CategoryComplaints: NodeHandleComplaints,
	model.CategoryRefunds:    NodeHandleRefunds,
	model.CategoryDelivery:   NodeHandleDelivery,
	model.CategoryPayments:   NodeHandlePayments,
	model.CategoryAccount:    NodeHandleAccount,
	model.CategoryPromotions: NodeHandlePromotions,
	model.CategoryEscalation: NodeHandleEscalation,
	model.CategoryGeneral:    NodeHandleGeneral,
}

// HandlerNode returns the handler key for category; anything without a
// handler of its own goes to General.
func HandlerNode(category model.Category) string {
	if key, ok := handlerNodes[category]; ok {
		return key
	}
	return NodeHandleGeneral
}
