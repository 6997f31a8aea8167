package graph

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwego/eino/compose"

	"github.com/chative-support-desk/server/internal/agent/escalation"
	"github.com/chative-support-desk/server/internal/agent/graph/nodes"
	"github.com/chative-support-desk/server/internal/agent/graph/observers"
	"github.com/chative-support-desk/server/internal/agent/model"
	"github.com/chative-support-desk/server/internal/agent/responder"
	logx "github.com/chative-support-desk/server/pkg/logger"
)

// Runner executes one support turn.
type Runner interface {
	Invoke(ctx context.Context, in model.QueryInput) (*model.TurnResult, error)
}

// Config holds everything needed to build the support workflow.
type Config struct {
	Intent    nodes.IntentClassifier
	Sentiment nodes.SentimentClassifier
	OrderID   nodes.OrderIDExtractor
	Responder *responder.Responder
	Resolver  *escalation.Resolver
	Workflow  model.WorkflowConfig
	// Now stamps logged turns; defaults to UTC wall clock.
	Now func() time.Time
}

func (c *Config) validate() error {
	if c.Intent == nil || c.Sentiment == nil || c.OrderID == nil {
		return errors.New("classifiers are not properly initialized")
	}
	if c.Responder == nil {
		return errors.New("responder is nil")
	}
	if c.Resolver == nil {
		return errors.New("escalation resolver is nil")
	}
	return nil
}

// GraphBuilder handles the construction of the support workflow graph.
type GraphBuilder struct {
	config *Config
	graph  *compose.Graph[model.QueryInput, *model.TurnResult]
}

type graphRunner struct {
	runnable compose.Runnable[model.QueryInput, *model.TurnResult]
}

func (r *graphRunner) Invoke(ctx context.Context, in model.QueryInput) (*model.TurnResult, error) {
	ctx, failure := nodes.WithFailure(ctx)

	out, err := r.runnable.Invoke(ctx, in, compose.WithCallbacks(observers.NewAllCallbacks()))
	if err != nil {
		// prefer the node's own error over the graph's wrapping of it
		if cause := failure.Err(); cause != nil {
			return nil, cause
		}
		return nil, err
	}
	if out == nil {
		return nil, errors.New("workflow produced no result")
	}
	return out, nil
}

// BuildGraph builds the workflow and returns a Runner over it.
func BuildGraph(ctx context.Context, cfg Config) (Runner, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("graph config: %w", err)
	}
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return time.Now().UTC() }
	}

	builder := &GraphBuilder{
		config: &cfg,
		graph: compose.NewGraph[model.QueryInput, *model.TurnResult](
			compose.WithGenLocalState(func(ctx context.Context) *model.AppState {
				return &model.AppState{}
			}),
		),
	}

	if err := builder.addNodes(); err != nil {
		return nil, err
	}
	if err := builder.addEdges(); err != nil {
		return nil, err
	}
	if err := builder.addBranches(); err != nil {
		return nil, err
	}

	runnable, err := builder.compile(ctx)
	if err != nil {
		return nil, err
	}
	logx.Debug().Msg("Support graph built successfully")
	return &graphRunner{runnable: runnable}, nil
}

// addNodes adds all processing nodes to the graph
func (b *GraphBuilder) addNodes() error {
	degrade := b.config.Workflow.DegradeOnClassifierError
	visit := nodes.NewVisitPreHandler[*model.WorkflowState]

	type step struct {
		key    string
		lambda *compose.Lambda
	}
	steps := []step{
		{nodes.NodeAnalyzeSentiment, nodes.NewAnalyzeSentimentNode(b.config.Sentiment, degrade)},
		{nodes.NodeExtractOrderID, nodes.NewExtractOrderIDNode(b.config.OrderID, degrade)},
		{nodes.NodeRoute, nodes.NewRouteNode()},
		{nodes.NodeEscalate, nodes.NewEscalateNode(b.config.Resolver)},
	}
	for _, c := range model.BusinessCategories() {
		steps = append(steps, step{nodes.HandlerNode(c), nodes.NewHandlerNode(b.config.Responder, c)})
	}

	if err := b.graph.AddLambdaNode(nodes.NodeCategorize,
		nodes.NewCategorizeNode(b.config.Intent, degrade),
		compose.WithStatePreHandler(nodes.NewVisitPreHandler[model.QueryInput](nodes.NodeCategorize)),
	); err != nil {
		return fmt.Errorf("add node %s: %w", nodes.NodeCategorize, err)
	}
	for _, s := range steps {
		if err := b.graph.AddLambdaNode(s.key, s.lambda, compose.WithStatePreHandler(visit(s.key))); err != nil {
			return fmt.Errorf("add node %s: %w", s.key, err)
		}
	}
	if err := b.graph.AddLambdaNode(nodes.NodeLogTurn,
		nodes.NewLogTurnNode(b.config.Now),
		compose.WithStatePreHandler(visit(nodes.NodeLogTurn)),
	); err != nil {
		return fmt.Errorf("add node %s: %w", nodes.NodeLogTurn, err)
	}
	return nil
}

// addEdges creates the unconditional connections between nodes
func (b *GraphBuilder) addEdges() error {
	edges := [][2]string{
		{compose.START, nodes.NodeCategorize},
		{nodes.NodeAnalyzeSentiment, nodes.NodeExtractOrderID},
		{nodes.NodeExtractOrderID, nodes.NodeRoute},
		{nodes.NodeEscalate, nodes.NodeLogTurn},
		{nodes.NodeLogTurn, compose.END},
	}
	for _, edge := range edges {
		if err := b.graph.AddEdge(edge[0], edge[1]); err != nil {
			return fmt.Errorf("add edge %s -> %s: %w", edge[0], edge[1], err)
		}
	}
	return nil
}

// addBranches creates conditional routing branches
func (b *GraphBuilder) addBranches() error {
	categorizeBranch := compose.NewGraphBranch(
		nodes.NewCategorizeCondition(),
		map[string]bool{
			nodes.NodeAnalyzeSentiment: true,
			nodes.NodeLogTurn:          true,
		},
	)
	if err := b.graph.AddBranch(nodes.NodeCategorize, categorizeBranch); err != nil {
		logx.Error().Err(err).Msg("Error adding categorize branch")
		return fmt.Errorf("error adding categorize branch: %w", err)
	}

	routeTargets := map[string]bool{
		nodes.NodeEscalate: true,
		nodes.NodeLogTurn:  true,
	}
	for _, c := range model.BusinessCategories() {
		routeTargets[nodes.HandlerNode(c)] = true
	}
	if err := b.graph.AddBranch(nodes.NodeRoute, compose.NewGraphBranch(nodes.NewRouteCondition(), routeTargets)); err != nil {
		logx.Error().Err(err).Msg("Error adding route branch")
		return fmt.Errorf("error adding route branch: %w", err)
	}

	for _, c := range model.BusinessCategories() {
		handlerBranch := compose.NewGraphBranch(
			nodes.NewHandlerCondition(),
			map[string]bool{
				nodes.NodeEscalate: true,
				nodes.NodeLogTurn:  true,
			},
		)
		if err := b.graph.AddBranch(nodes.HandlerNode(c), handlerBranch); err != nil {
			logx.Error().Err(err).Str("category", string(c)).Msg("Error adding handler branch")
			return fmt.Errorf("error adding %s branch: %w", c, err)
		}
	}
	return nil
}

// compile finalizes and compiles the graph
func (b *GraphBuilder) compile(ctx context.Context) (compose.Runnable[model.QueryInput, *model.TurnResult], error) {
	maxSteps := b.config.Workflow.MaxRunSteps
	if maxSteps < 10 {
		maxSteps = 10
	}

	runnable, err := b.graph.Compile(ctx,
		compose.WithGraphName("SupportWorkflow"),
		compose.WithMaxRunSteps(maxSteps),
	)
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	logx.Debug().Msg("Graph compiled successfully")
	return runnable, nil
}
