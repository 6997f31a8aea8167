package catalog

import (
	"fmt"

	"github.com/tiktoken-go/tokenizer"

	"github.com/chative-support-desk/server/internal/agent/model"
	logx "github.com/chative-support-desk/server/pkg/logger"
)

// TokenCounter counts prompt tokens.
type TokenCounter interface {
	Count(text string) (int, error)
}

// NewTokenCounter returns a cl100k counter. Gemini uses its own tokenizer,
// so counts are an estimate good enough for budgeting.
func NewTokenCounter() (TokenCounter, error) {
	codec, err := tokenizer.Get(tokenizer.Cl100kBase)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer: %w", err)
	}
	return codecCounter{codec: codec}, nil
}

type codecCounter struct {
	codec tokenizer.Codec
}

func (c codecCounter) Count(text string) (int, error) {
	ids, _, err := c.codec.Encode(text)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

// FewShot renders the catalog examples for the intent prompt, keeping them
// within maxTokens. When the full set does not fit, examples are taken
// round-robin across categories so every category stays represented.
// maxTokens <= 0 or a nil counter disables trimming.
func FewShot(c *model.Catalog, counter TokenCounter, maxTokens int) (string, error) {
	full, err := ExamplesJSON(c.Queries)
	if err != nil {
		return "", err
	}
	if maxTokens <= 0 || counter == nil {
		return full, nil
	}

	n, err := counter.Count(full)
	if err != nil {
		return "", fmt.Errorf("count catalog tokens: %w", err)
	}
	if n <= maxTokens {
		return full, nil
	}

	kept := make([]model.CatalogEntry, 0, len(c.Queries))
	rendered, _ := ExamplesJSON(kept)
	for _, entry := range roundRobin(c.Queries) {
		candidate, err := ExamplesJSON(append(kept, entry))
		if err != nil {
			return "", err
		}
		n, err := counter.Count(candidate)
		if err != nil {
			return "", fmt.Errorf("count catalog tokens: %w", err)
		}
		if n > maxTokens {
			break
		}
		kept = append(kept, entry)
		rendered = candidate
	}

	logx.Warn().
		Int("max_tokens", maxTokens).
		Int("examples_total", len(c.Queries)).
		Int("examples_kept", len(kept)).
		Msg("Catalog context trimmed to token budget")
	return rendered, nil
}

// roundRobin interleaves entries by category, categories in first-seen order.
func roundRobin(entries []model.CatalogEntry) []model.CatalogEntry {
	var order []string
	groups := make(map[string][]model.CatalogEntry)
	for _, e := range entries {
		if _, ok := groups[e.Category]; !ok {
			order = append(order, e.Category)
		}
		groups[e.Category] = append(groups[e.Category], e)
	}

	out := make([]model.CatalogEntry, 0, len(entries))
	for round := 0; len(out) < len(entries); round++ {
		for _, cat := range order {
			if round < len(groups[cat]) {
				out = append(out, groups[cat][round])
			}
		}
	}
	return out
}
