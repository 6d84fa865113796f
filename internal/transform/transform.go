// Package transform rewrites a parsed value tree before serialization:
// object keys can be renamed to a configured style and sorted
// alphabetically. Arrays and scalars pass through untouched.
package transform

import (
	"sort"

	"github.com/mcncl/pyjson/internal/config"
	"github.com/mcncl/pyjson/internal/value"
)

// Transformer applies the naming and ordering rules from a Config.
type Transformer struct {
	cfg *config.Config
}

// NewTransformer creates a Transformer. A nil config means defaults, which
// leave the tree unchanged.
func NewTransformer(cfg *config.Config) *Transformer {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Transformer{cfg: cfg}
}

// Apply returns the rewritten tree. The input tree is never mutated.
func (t *Transformer) Apply(v value.Value) value.Value {
	if !t.active() {
		return v
	}
	return t.rewrite(v)
}

// active reports whether any rule would change the tree.
func (t *Transformer) active() bool {
	return t.cfg.SortKeys ||
		t.cfg.Naming.KeyStyle != config.KeyStyleKeep ||
		len(t.cfg.Naming.KeyMappings) > 0
}

func (t *Transformer) rewrite(v value.Value) value.Value {
	switch node := v.(type) {
	case value.Array:
		out := make(value.Array, len(node))
		for i, elem := range node {
			out[i] = t.rewrite(elem)
		}
		return out
	case value.Object:
		out := value.Object{}
		for _, m := range node {
			// Set collapses keys that collide after renaming; the later
			// member wins, matching duplicate-key handling in the parser.
			out.Set(t.cfg.GetKeyName(m.Key), t.rewrite(m.Value))
		}
		if t.cfg.SortKeys {
			sort.SliceStable(out, func(i, j int) bool { return out[i].Key < out[j].Key })
		}
		return out
	default:
		return v
	}
}
