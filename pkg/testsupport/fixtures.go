package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formblock/pkg/model"
)

// MustLoadBlock decodes a JSON or YAML block fixture. Testing helpers fail the
// test on error to keep contract tests concise.
func MustLoadBlock(t *testing.T, path string) model.Block {
	t.Helper()

	block, err := LoadBlock(path)
	if err != nil {
		t.Fatalf("load block: %v", err)
	}
	return block
}

// LoadBlock reads a block fixture without requiring testing.T, allowing
// callers to wire fixtures in setup functions.
func LoadBlock(path string) (model.Block, error) {
	if path == "" {
		return model.Block{}, errors.New("testsupport: block path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Block{}, fmt.Errorf("testsupport: read block: %w", err)
	}
	return DecodeBlock(filepath.Ext(path), data)
}

// DecodeBlock parses raw fixture bytes. ext selects YAML for ".yaml"/".yml"
// and JSON otherwise.
func DecodeBlock(ext string, data []byte) (model.Block, error) {
	raw := map[string]any{}
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return model.Block{}, fmt.Errorf("testsupport: unmarshal yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return model.Block{}, fmt.Errorf("testsupport: unmarshal json: %w", err)
		}
	}
	block, err := model.DecodeBlock(raw)
	if err != nil {
		return model.Block{}, fmt.Errorf("testsupport: decode block: %w", err)
	}
	return block, nil
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
