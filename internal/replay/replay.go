// Package replay runs scripted conversations through the session manager.
package replay

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sourcegraph/conc/pool"
	"gopkg.in/yaml.v3"

	"github.com/chative-support-desk/server/internal/agent/model"
	logx "github.com/chative-support-desk/server/pkg/logger"
)

//go:embed scripts/demo.yaml
var demoScripts []byte

// Script is one scripted conversation.
type Script struct {
	Name    string   `yaml:"name"`
	Queries []string `yaml:"queries"`
}

// Exchange is one replayed query. Err is set when the turn failed; the
// session carries on with the next query.
type Exchange struct {
	Query     string
	SessionID string
	Result    *model.TurnResult
	Err       error
}

// Transcript is the outcome of one script.
type Transcript struct {
	Script    string
	Exchanges []Exchange
}

// Failed counts the exchanges whose turn returned an error.
func (t Transcript) Failed() int {
	n := 0
	for _, ex := range t.Exchanges {
		if ex.Err != nil {
			n++
		}
	}
	return n
}

// SessionHandler is the part of the session manager a replay drives.
type SessionHandler interface {
	NewSession() string
	Handle(ctx context.Context, sessionID, query string) (*model.TurnResult, error)
}

// Parse decodes a YAML list of scripts.
func Parse(data []byte) ([]Script, error) {
	var scripts []Script
	if err := yaml.Unmarshal(data, &scripts); err != nil {
		return nil, fmt.Errorf("decode scripts: %w", err)
	}
	for i, s := range scripts {
		if strings.TrimSpace(s.Name) == "" {
			return nil, fmt.Errorf("script %d: name is empty", i)
		}
		if len(s.Queries) == 0 {
			return nil, fmt.Errorf("script %q: no queries", s.Name)
		}
	}
	return scripts, nil
}

// Load reads scripts from path.
func Load(path string) ([]Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scripts %s: %w", path, err)
	}
	return Parse(data)
}

// Demo returns the bundled demo scripts.
func Demo() []Script {
	scripts, err := Parse(demoScripts)
	if err != nil {
		panic(err)
	}
	return scripts
}

// Replayer runs scripts concurrently, at most MaxConcurrency at a time.
type Replayer struct {
	handler        SessionHandler
	maxConcurrency int
}

func New(handler SessionHandler, maxConcurrency int) *Replayer {
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}
	return &Replayer{handler: handler, maxConcurrency: maxConcurrency}
}

// Run replays every script in its own session and returns the transcripts
// in script order. It only fails when ctx is cancelled.
func (r *Replayer) Run(ctx context.Context, scripts []Script) ([]Transcript, error) {
	type indexed struct {
		i int
		t Transcript
	}

	p := pool.NewWithResults[indexed]().WithMaxGoroutines(r.maxConcurrency)
	for i, s := range scripts {
		p.Go(func() indexed {
			return indexed{i: i, t: r.play(ctx, s)}
		})
	}
	results := p.Wait()

	sort.Slice(results, func(a, b int) bool { return results[a].i < results[b].i })
	out := make([]Transcript, len(results))
	for i, res := range results {
		out[i] = res.t
	}
	return out, ctx.Err()
}

func (r *Replayer) play(ctx context.Context, s Script) Transcript {
	t := Transcript{Script: s.Name}
	sessionID := r.handler.NewSession()
	logger := logx.Logger().With().Str("script", s.Name).Logger()

	for _, q := range s.Queries {
		if err := ctx.Err(); err != nil {
			t.Exchanges = append(t.Exchanges, Exchange{Query: q, SessionID: sessionID, Err: err})
			return t
		}

		res, err := r.handler.Handle(ctx, sessionID, q)
		t.Exchanges = append(t.Exchanges, Exchange{Query: q, SessionID: sessionID, Result: res, Err: err})
		if err != nil {
			logger.Warn().Err(err).Str("session_id", sessionID).Msg("Replayed turn failed")
			continue
		}
		if res.SessionEnded {
			sessionID = res.SessionID
		}
	}
	logger.Debug().Int("turns", len(t.Exchanges)).Int("failed", t.Failed()).Msg("Script replayed")
	return t
}

// Write prints transcripts in a human readable form.
func Write(w io.Writer, transcripts []Transcript) error {
	var errs []error
	printf := func(format string, args ...any) {
		if _, err := fmt.Fprintf(w, format, args...); err != nil {
			errs = append(errs, err)
		}
	}

	for _, t := range transcripts {
		printf("=== %s\n", t.Script)
		for _, ex := range t.Exchanges {
			printf("> %s\n", ex.Query)
			if ex.Err != nil {
				printf("! %v\n", ex.Err)
				continue
			}
			res := ex.Result
			printf("< %s\n", res.Response)
			printf("  [category=%s sentiment=%s order_id=%s escalated=%t", res.Category, res.Sentiment, res.OrderID, res.Escalated)
			if res.Agent != "" {
				printf(" agent=%s", res.Agent)
			}
			if res.Degraded {
				printf(" degraded")
			}
			printf("]\n")
		}
		printf("\n")
	}
	return errors.Join(errs...)
}
