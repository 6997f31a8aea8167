package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/chative-support-desk/server/internal/agent/model"
	logx "github.com/chative-support-desk/server/pkg/logger"
)

//go:embed schema/catalog.schema.json
var catalogSchema []byte

// Load reads the catalog document at path. JSON is the default format;
// .yaml and .yml files are decoded as YAML. When the file does not exist
// the built-in catalog is written to path and returned.
func Load(path string) (*model.Catalog, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		c := Default()
		if err := Save(path, c); err != nil {
			return nil, err
		}
		logx.Info().Str("path", path).Int("queries", len(c.Queries)).Int("agents", len(c.Agents)).
			Msg("Catalog not found, synthesized default catalog")
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	c, err := Decode(data, isYAML(path))
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}

	logx.Debug().Str("path", path).Int("queries", len(c.Queries)).Int("agents", len(c.Agents)).
		Msg("Catalog loaded")
	return c, nil
}

// Decode validates and decodes a catalog document.
func Decode(data []byte, asYAML bool) (*model.Catalog, error) {
	if asYAML {
		var c model.Catalog
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		// validate the normalised JSON form so both formats share one schema
		b, err := json.Marshal(c)
		if err != nil {
			return nil, fmt.Errorf("encode catalog: %w", err)
		}
		data = b
	}

	if err := Validate(data); err != nil {
		return nil, err
	}

	var c model.Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return &c, nil
}

// Validate checks a JSON catalog document against the embedded schema.
func Validate(data []byte) error {
	if !json.Valid(data) {
		return fmt.Errorf("catalog is not valid JSON")
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(catalogSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	if !result.Valid() {
		var msgs []string
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("schema validation errors: %s", strings.Join(msgs, "; "))
	}
	return nil
}

// Save persists c at path as indented JSON (or YAML for .yaml/.yml).
func Save(path string, c *model.Catalog) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "    ")
	}
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create catalog dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write catalog %s: %w", path, err)
	}
	return nil
}

// ExamplesJSON renders few-shot examples the way they are handed to the classifier.
func ExamplesJSON(entries []model.CatalogEntry) (string, error) {
	b, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode examples: %w", err)
	}
	return string(b), nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
