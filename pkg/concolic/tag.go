package concolic

import (
	"sort"
	"strings"
	"sync"

	uuid "github.com/satori/go.uuid"
)

// LabelRegistry is the Tag/Label Registry (C1). It maintains the
// process-wide set of symbolic labels registered by the symbolicator and is
// the sole authority on whether a Tag is user-symbolic — the Recorder must
// consult it rather than guess from value identity.
//
// Readers outnumber writers in the hot path (every comparison consults the
// registry, labels are only added a handful of times per session), so a
// single RWMutex is uncontended in practice.
type LabelRegistry struct {
	mu     sync.RWMutex
	labels map[string]struct{}
}

// NewLabelRegistry returns an empty label registry.
func NewLabelRegistry() *LabelRegistry {
	return &LabelRegistry{labels: make(map[string]struct{})}
}

// Add registers a symbolic label. Adding an already-registered label is a
// no-op.
func (r *LabelRegistry) Add(label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.labels[label] = struct{}{}
}

// Clear removes every registered label.
func (r *LabelRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.labels = make(map[string]struct{})
}

// Has reports whether label is currently registered.
func (r *LabelRegistry) Has(label string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.labels[label]
	return ok
}

// IsUserSymbolic reports whether any label carried by tag is registered.
// A nil or empty tag is never user-symbolic.
func (r *LabelRegistry) IsUserSymbolic(tag Tag) bool {
	_, ok := r.FirstSymbolicLabel(tag)
	return ok
}

// FirstSymbolicLabel returns the lexicographically smallest label carried by
// tag that is currently registered as symbolic, so the Recorder can pick a
// deterministic variable name for a tagged operand. ok is false when tag
// carries no registered label.
func (r *LabelRegistry) FirstSymbolicLabel(tag Tag) (label string, ok bool) {
	if len(tag.Labels) == 0 {
		return "", false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	candidates := make([]string, 0, len(tag.Labels))
	for l := range tag.Labels {
		if _, registered := r.labels[l]; registered {
			candidates = append(candidates, l)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}
	sort.Strings(candidates)
	return candidates[0], true
}

// Tag is an opaque marker associated at instrumentation time with a
// concrete runtime value. It carries a (possibly empty) set of symbolic
// labels; two tags compare equal iff their label sets are equal. The ID
// field exists only to make Tag printable in diagnostics — it plays no part
// in equality, which spec.md defines purely over Labels.
type Tag struct {
	ID     uuid.UUID
	Labels map[string]struct{}
}

// NewTag returns a fresh tag carrying no labels. Diagnostic-ID generation
// is best-effort: a v4 UUID failure (exhausted entropy source) falls back
// to the zero UUID rather than propagating, since the ID plays no part in
// Tag equality.
func NewTag() Tag {
	id, err := uuid.NewV4()
	if err != nil {
		id = uuid.UUID{}
	}
	return Tag{ID: id, Labels: make(map[string]struct{})}
}

// WithLabel returns a copy of the tag with label added to its label set.
func (t Tag) WithLabel(label string) Tag {
	labels := make(map[string]struct{}, len(t.Labels)+1)
	for l := range t.Labels {
		labels[l] = struct{}{}
	}
	labels[label] = struct{}{}
	return Tag{ID: t.ID, Labels: labels}
}

// Equal reports whether two tags carry identical label sets.
func (t Tag) Equal(other Tag) bool {
	if len(t.Labels) != len(other.Labels) {
		return false
	}
	for l := range t.Labels {
		if _, ok := other.Labels[l]; !ok {
			return false
		}
	}
	return true
}

// IsEmpty reports whether the tag carries no labels at all.
func (t Tag) IsEmpty() bool {
	return len(t.Labels) == 0
}

// String renders the tag's labels in sorted order for stable diagnostics.
func (t Tag) String() string {
	if len(t.Labels) == 0 {
		return "<tag:" + t.ID.String()[:8] + ">"
	}
	names := make([]string, 0, len(t.Labels))
	for l := range t.Labels {
		names = append(names, l)
	}
	sort.Strings(names)
	return "<tag:" + strings.Join(names, ",") + ">"
}
