package content

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formblock/pkg/model"
)

// Store holds the blocks loaded from a content tree, keyed by id.
type Store struct {
	blocks  map[string]model.Block
	sources map[string]string
}

// LoadOption configures LoadFS.
type LoadOption func(*loadConfig)

type loadConfig struct {
	decorators []model.Decorator
	sanitize   bool
}

// WithDecorators runs extra decorators on every loaded block, after
// sanitisation.
func WithDecorators(decorators ...model.Decorator) LoadOption {
	return func(cfg *loadConfig) {
		cfg.decorators = append(cfg.decorators, decorators...)
	}
}

// WithoutSanitizer keeps markup in string props. Only use it for trusted
// content.
func WithoutSanitizer() LoadOption {
	return func(cfg *loadConfig) {
		cfg.sanitize = false
	}
}

// LoadFS walks fsys and decodes every .json, .yaml and .yml file as one
// block. The block id is its elementId, or the file stem when the block has
// none. Duplicate ids are an error.
func LoadFS(fsys fs.FS, options ...LoadOption) (*Store, error) {
	cfg := loadConfig{sanitize: true}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	decorators := cfg.decorators
	if cfg.sanitize {
		decorators = append([]model.Decorator{Sanitizer()}, decorators...)
	}

	store := &Store{
		blocks:  make(map[string]model.Block),
		sources: make(map[string]string),
	}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isBlockFile(name) {
			return nil
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("content: read %s: %w", name, err)
		}

		raw, err := parseDocument(data, name)
		if err != nil {
			return err
		}
		block, err := model.DecodeBlock(raw)
		if err != nil {
			return fmt.Errorf("content: decode %s: %w", name, err)
		}
		if err := model.ApplyDecorators(&block, decorators...); err != nil {
			return fmt.Errorf("content: decorate %s: %w", name, err)
		}

		id := strings.TrimSpace(block.ElementID)
		if id == "" {
			id = stem(name)
		}
		if previous, exists := store.sources[id]; exists {
			return fmt.Errorf("content: duplicate block %q (files %s and %s)", id, previous, name)
		}
		store.blocks[id] = block
		store.sources[id] = name
		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

// Block returns a copy of the block with the supplied id.
func (s *Store) Block(id string) (model.Block, bool) {
	if s == nil {
		return model.Block{}, false
	}
	block, ok := s.blocks[strings.TrimSpace(id)]
	if !ok {
		return model.Block{}, false
	}
	return cloneBlock(block), true
}

// Source returns the file a block was loaded from.
func (s *Store) Source(id string) string {
	if s == nil {
		return ""
	}
	return s.sources[strings.TrimSpace(id)]
}

// IDs lists block ids in sorted order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.blocks))
	for id := range s.blocks {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Empty reports whether the store holds any blocks.
func (s *Store) Empty() bool {
	return s == nil || len(s.blocks) == 0
}

func parseDocument(data []byte, source string) (map[string]any, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("content: file %s is empty", source)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = nil
	if err := yaml.Unmarshal(data, &doc); err == nil && doc != nil {
		return doc, nil
	}

	return nil, fmt.Errorf("content: parse %s: invalid JSON or YAML", source)
}

func cloneBlock(block model.Block) model.Block {
	out := block
	if block.Fields != nil {
		out.Fields = make([]model.FieldDescriptor, len(block.Fields))
		for idx, field := range block.Fields {
			out.Fields[idx] = field.Clone()
		}
	}
	if block.SubmitButton != nil {
		button := *block.SubmitButton
		out.SubmitButton = &button
	}
	return out
}

func isBlockFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func stem(name string) string {
	base := path.Base(name)
	return strings.TrimSuffix(base, path.Ext(base))
}
