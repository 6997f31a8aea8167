package nodes

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cloudwego/eino/compose"

	"github.com/chative-support-desk/server/internal/agent/escalation"
	"github.com/chative-support-desk/server/internal/agent/graph/conversations"
	"github.com/chative-support-desk/server/internal/agent/model"
	"github.com/chative-support-desk/server/internal/agent/responder"
	errx "github.com/chative-support-desk/server/internal/core/error"
	logx "github.com/chative-support-desk/server/pkg/logger"
)

type IntentClassifier interface {
	Classify(ctx context.Context, query string) (model.Category, model.Usage, error)
}

type SentimentClassifier interface {
	Classify(ctx context.Context, query string) (model.Sentiment, model.Usage, error)
}

type OrderIDExtractor interface {
	Extract(ctx context.Context, query string) (model.OrderID, model.Usage, error)
}

// degradeOrFail decides what a classifier failure does to the turn. With
// degrade on, an unavailable classifier turns the rest of the run into a
// General / Neutral / no-order turn without further calls. Otherwise the
// run aborts and nothing is logged.
func degradeOrFail(ctx context.Context, st *model.WorkflowState, node string, err error, degrade bool) (*model.WorkflowState, error) {
	if !degrade || !errors.Is(err, errx.ErrClassifierUnavailable) {
		return nil, fail(ctx, err)
	}
	logx.Warn().Err(err).
		Str("session_id", st.SessionID).
		Str("node", node).
		Msg("Classifier unavailable, continuing in degraded mode")
	st.Degraded = true
	st.Category = model.CategoryGeneral
	st.Sentiment = model.SentimentNeutral
	st.OrderID = model.NoOrderID
	return st, nil
}

// NewCategorizeNode answers small talk locally and asks the intent
// classifier for everything else.
func NewCategorizeNode(intent IntentClassifier, degrade bool) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.QueryInput) (*model.WorkflowState, error) {
		st := &model.WorkflowState{
			SessionID: in.SessionID,
			Query:     in.Query,
			History:   model.CloneTurns(in.History),
			Sentiment: model.SentimentNeutral,
			OrderID:   model.NoOrderID,
		}

		if reply, ok := responder.SmallTalk(in.Query); ok {
			st.Category = model.CategoryDefault
			st.Response = reply
			st.Rule = "small_talk"
			logx.Debug().Str("session_id", st.SessionID).Msg("Small talk answered without classifier")
			return st, nil
		}

		category, usage, err := intent.Classify(ctx, in.Query)
		recordUsage(ctx, usage)
		if err != nil {
			return degradeOrFail(ctx, st, NodeCategorize, err, degrade)
		}
		st.Category = category

		logx.Debug().Str("session_id", st.SessionID).Str("category", string(category)).Msg("Query categorized")
		return st, nil
	})
}

// NewCategorizeCondition sends small talk straight to LogTurn.
func NewCategorizeCondition() func(context.Context, *model.WorkflowState) (string, error) {
	return func(ctx context.Context, st *model.WorkflowState) (string, error) {
		if st.Category == model.CategoryDefault {
			return NodeLogTurn, nil
		}
		return NodeAnalyzeSentiment, nil
	}
}

func skipClassifiers(st *model.WorkflowState) bool {
	return st.Category == model.CategoryDefault || st.Degraded
}

func NewAnalyzeSentimentNode(sentiment SentimentClassifier, degrade bool) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, st *model.WorkflowState) (*model.WorkflowState, error) {
		if skipClassifiers(st) {
			st.Sentiment = model.SentimentNeutral
			return st, nil
		}

		s, usage, err := sentiment.Classify(ctx, st.Query)
		recordUsage(ctx, usage)
		if err != nil {
			return degradeOrFail(ctx, st, NodeAnalyzeSentiment, err, degrade)
		}
		st.Sentiment = s

		logx.Debug().Str("session_id", st.SessionID).Str("sentiment", string(s)).Msg("Sentiment analyzed")
		return st, nil
	})
}

func NewExtractOrderIDNode(extractor OrderIDExtractor, degrade bool) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, st *model.WorkflowState) (*model.WorkflowState, error) {
		if skipClassifiers(st) {
			st.OrderID = model.NoOrderID
			return st, nil
		}

		id, usage, err := extractor.Extract(ctx, st.Query)
		recordUsage(ctx, usage)
		if err != nil {
			return degradeOrFail(ctx, st, NodeExtractOrderID, err, degrade)
		}
		st.OrderID = id

		logx.Debug().Str("session_id", st.SessionID).Str("order_id", string(id)).Msg("Order id extracted")
		return st, nil
	})
}

// NewRouteNode is a pass-through so the routing decision shows up as a step.
func NewRouteNode() *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, st *model.WorkflowState) (*model.WorkflowState, error) {
		return st, nil
	})
}

// NewRouteCondition picks the next step after order id extraction: an
// explicit hand-off request beats everything, small talk is only logged,
// the rest goes to the handler of its category.
func NewRouteCondition() func(context.Context, *model.WorkflowState) (string, error) {
	return func(ctx context.Context, st *model.WorkflowState) (string, error) {
		next := HandlerNode(st.Category)
		switch {
		case st.NeedsEscalation || strings.Contains(strings.ToLower(st.Query), "live agent"):
			next = NodeEscalate
		case st.Category == model.CategoryDefault:
			next = NodeLogTurn
		}
		logx.Debug().
			Str("session_id", st.SessionID).
			Str("category", string(st.Category)).
			Str("next", next).
			Msg("Routing turn")
		return next, nil
	}
}

// NewHandlerNode answers a turn from the rule table of category.
func NewHandlerNode(r *responder.Responder, category model.Category) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, st *model.WorkflowState) (*model.WorkflowState, error) {
		reply := r.Respond(category, st.Query, st.Sentiment, st.OrderID)
		st.Response = reply.Text
		st.NeedsEscalation = reply.Escalate
		st.Rule = reply.Rule

		logx.Debug().
			Str("session_id", st.SessionID).
			Str("category", string(category)).
			Str("rule", reply.Rule).
			Bool("escalate", reply.Escalate).
			Msg("Handler answered")
		return st, nil
	})
}

// NewHandlerCondition routes escalated answers to the resolver.
func NewHandlerCondition() func(context.Context, *model.WorkflowState) (string, error) {
	return func(ctx context.Context, st *model.WorkflowState) (string, error) {
		if st.NeedsEscalation {
			return NodeEscalate, nil
		}
		return NodeLogTurn, nil
	}
}

// NewEscalateNode replaces the handler answer with the hand-off message.
func NewEscalateNode(resolver *escalation.Resolver) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, st *model.WorkflowState) (*model.WorkflowState, error) {
		handoff := resolver.Resolve(st.Category, st.Query)
		st.Response = handoff.Message
		st.NeedsEscalation = true
		st.Agent = handoff.Agent.Name
		st.AgentContact = handoff.Agent.ContactNumber

		logx.Info().
			Str("session_id", st.SessionID).
			Str("category", string(st.Category)).
			Str("agent", handoff.Agent.Name).
			Bool("fallback_agent", handoff.Fallback).
			Msg("Turn escalated")
		return st, nil
	})
}

// NewLogTurnNode appends the finished turn to the history and builds the result.
func NewLogTurnNode(now func() time.Time) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, st *model.WorkflowState) (*model.TurnResult, error) {
		turn := model.Turn{
			Query:     st.Query,
			Category:  st.Category,
			Sentiment: st.Sentiment,
			OrderID:   st.OrderID,
			Response:  st.Response,
			Escalated: st.NeedsEscalation,
			Agent:     st.Agent,
			Timestamp: now(),
		}
		history := conversations.Append(st.History, turn)
		if len(history) == len(st.History) {
			logx.Warn().Str("session_id", st.SessionID).Msg("Turn produced no response, history unchanged")
		}

		res := &model.TurnResult{
			SessionID:    st.SessionID,
			Category:     st.Category,
			Sentiment:    st.Sentiment,
			OrderID:      st.OrderID,
			Response:     st.Response,
			Escalated:    st.NeedsEscalation,
			Agent:        st.Agent,
			AgentContact: st.AgentContact,
			Degraded:     st.Degraded,
			History:      history,
		}
		err := compose.ProcessState(ctx, func(_ context.Context, s *model.AppState) error {
			res.Path = append([]string(nil), s.Visited...)
			res.ClassifierCalls = s.ClassifierCalls
			res.CostUSD = s.TotalCostUSD
			return nil
		})
		if err != nil {
			return nil, fail(ctx, err)
		}

		logx.Debug().
			Str("session_id", st.SessionID).
			Str("category", string(st.Category)).
			Str("rule", st.Rule).
			Bool("escalated", st.NeedsEscalation).
			Int("classifier_calls", res.ClassifierCalls).
			Float64("cost_usd", res.CostUSD).
			Msg("Turn logged")
		return res, nil
	})
}
