package testing

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-tabletop/tabletop/pkg/component"
)

// Finder locates components in a scene tree.
type Finder interface {
	// Evaluate returns all matches under root (depth-first pre-order),
	// root itself included.
	Evaluate(root component.Component) []component.Component
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	components []component.Component
	finder     Finder
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() component.Component {
	if len(r.components) == 0 {
		desc := "unknown"
		if r.finder != nil {
			desc = r.finder.Description()
		}
		panic(fmt.Sprintf("Finder found no components: %s", desc))
	}
	return r.components[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() component.Component {
	if len(r.components) == 0 {
		return nil
	}
	return r.components[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) component.Component {
	if index < 0 || index >= len(r.components) {
		desc := "unknown"
		if r.finder != nil {
			desc = r.finder.Description()
		}
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.components), desc))
	}
	return r.components[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []component.Component {
	return r.components
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.components)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.components) > 0
}

// --- Concrete finders ---

// typeFinder matches components of one concrete type.
type typeFinder struct {
	match    func(component.Component) bool
	typeName string
}

func (f *typeFinder) Evaluate(root component.Component) []component.Component {
	return collectMatches(root, f.match)
}

func (f *typeFinder) Description() string {
	return fmt.Sprintf("ByType(%s)", f.typeName)
}

// ByType returns a finder that matches components of type T.
func ByType[T component.Component]() Finder {
	return &typeFinder{
		match: func(c component.Component) bool {
			_, ok := c.(T)
			return ok
		},
		typeName: reflect.TypeFor[T]().String(),
	}
}

// kindFinder matches components by their Kind string.
type kindFinder struct {
	kind string
}

func (f *kindFinder) Evaluate(root component.Component) []component.Component {
	return collectMatches(root, func(c component.Component) bool {
		return c.Kind() == f.kind
	})
}

func (f *kindFinder) Description() string {
	return fmt.Sprintf("ByKind(%q)", f.kind)
}

// ByKind returns a finder that matches components whose Kind equals kind.
func ByKind(kind string) Finder {
	return &kindFinder{kind: kind}
}

// idFinder matches the component with a specific identity.
type idFinder struct {
	id uint64
}

func (f *idFinder) Evaluate(root component.Component) []component.Component {
	return collectMatches(root, func(c component.Component) bool {
		return c.ID() == f.id
	})
}

func (f *idFinder) Description() string {
	return fmt.Sprintf("ByID(%d)", f.id)
}

// ByID returns a finder that matches the component with the given ID.
func ByID(id uint64) Finder {
	return &idFinder{id: id}
}

// textFinder matches caption-bearing components by exact content.
type textFinder struct {
	text string
}

func (f *textFinder) Evaluate(root component.Component) []component.Component {
	return collectMatches(root, func(c component.Component) bool {
		caption, ok := captionOf(c)
		return ok && caption == f.text
	})
}

func (f *textFinder) Description() string {
	return fmt.Sprintf("ByText(%q)", f.text)
}

// ByText returns a finder that matches a [component.Label] or
// [component.Button] with exact caption content.
func ByText(text string) Finder {
	return &textFinder{text: text}
}

// textContainingFinder matches caption-bearing components by substring.
type textContainingFinder struct {
	substring string
}

func (f *textContainingFinder) Evaluate(root component.Component) []component.Component {
	return collectMatches(root, func(c component.Component) bool {
		caption, ok := captionOf(c)
		return ok && strings.Contains(caption, f.substring)
	})
}

func (f *textContainingFinder) Description() string {
	return fmt.Sprintf("ByTextContaining(%q)", f.substring)
}

// ByTextContaining returns a finder that matches a [component.Label] or
// [component.Button] whose caption contains the given substring.
func ByTextContaining(substring string) Finder {
	return &textContainingFinder{substring: substring}
}

func captionOf(c component.Component) (string, bool) {
	switch x := c.(type) {
	case *component.Label:
		return x.Text.Value(), true
	case *component.Button:
		return x.Text.Value(), true
	default:
		return "", false
	}
}

// predicateFinder matches components satisfying a predicate.
type predicateFinder struct {
	fn   func(component.Component) bool
	desc string
}

func (f *predicateFinder) Evaluate(root component.Component) []component.Component {
	return collectMatches(root, f.fn)
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByPredicate returns a finder that matches components satisfying fn.
func ByPredicate(fn func(component.Component) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate(...)"}
}

// descendantFinder finds components matching 'matching' that are
// descendants of components matching 'of'.
type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(root component.Component) []component.Component {
	ancestors := f.of.Evaluate(root)
	if len(ancestors) == 0 {
		return nil
	}
	var results []component.Component
	seen := make(map[uint64]bool)
	for _, ancestor := range ancestors {
		parent, ok := ancestor.(component.Parent)
		if !ok {
			continue
		}
		// Search each ancestor's subtree, skipping the ancestor itself.
		for _, child := range parent.ChildComponents() {
			for _, match := range f.matching.Evaluate(child) {
				if !seen[match.ID()] {
					seen[match.ID()] = true
					results = append(results, match)
				}
			}
		}
	}
	return results
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant returns a finder that matches components satisfying
// 'matching' that are descendants of components satisfying 'of'.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}

// collectMatches performs depth-first pre-order traversal, collecting
// components that satisfy the predicate.
func collectMatches(root component.Component, predicate func(component.Component) bool) []component.Component {
	var results []component.Component
	walkTree(root, func(c component.Component) bool {
		if predicate(c) {
			results = append(results, c)
		}
		return true
	})
	return results
}

// walkTree performs a depth-first pre-order traversal of a component
// tree. The visitor returns false to stop traversal.
func walkTree(root component.Component, visitor func(component.Component) bool) bool {
	if !visitor(root) {
		return false
	}
	if parent, ok := root.(component.Parent); ok {
		for _, child := range parent.ChildComponents() {
			if !walkTree(child, visitor) {
				return false
			}
		}
	}
	return true
}
