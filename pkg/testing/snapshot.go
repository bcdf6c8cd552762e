package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-tabletop/tabletop/pkg/component"
)

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the scene tree structure with live property values.
// Component identities are positional (kind#0, kind#1, ...) rather than
// runtime IDs, so snapshots stay stable across test runs.
type Snapshot struct {
	Width      float64      `json:"width"`
	Height     float64      `json:"height"`
	Opacity    float64      `json:"opacity"`
	Components []*SceneNode `json:"components,omitempty"`
}

// SceneNode represents a component in the serialized scene tree.
type SceneNode struct {
	ID         string         `json:"id"`
	Kind       string         `json:"kind"`
	Properties map[string]any `json:"props,omitempty"`
	Children   []*SceneNode   `json:"children,omitempty"`
}

// CaptureSnapshot captures the current scene tree.
func (t *SceneTester) CaptureSnapshot() *Snapshot {
	snap := &Snapshot{
		Width:   round2(t.scene.Width.Value()),
		Height:  round2(t.scene.Height.Value()),
		Opacity: round2(t.scene.Opacity.Value()),
	}
	counter := &kindCounter{}
	t.scene.Components.ForEach(func(_ int, c component.Component) {
		snap.Components = append(snap.Components, captureNode(c, counter))
	})
	return snap
}

// MatchesFile compares this snapshot against a golden file. On mismatch
// it reports a diff and instructions for updating. When
// TABLETOP_UPDATE_SNAPSHOTS=1 is set, the file is silently updated
// instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv("TABLETOP_UPDATE_SNAPSHOTS") == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: TABLETOP_UPDATE_SNAPSHOTS=1 go test -run %s", path, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: TABLETOP_UPDATE_SNAPSHOTS=1 go test -run %s", path, diff, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating
// directories as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a unified diff between this snapshot and other. Returns
// empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return unifiedDiff(string(b), string(a))
}

// --- Internal ---

// kindCounter assigns stable IDs like "label#0", "label#1".
type kindCounter struct {
	counts map[string]int
}

func (c *kindCounter) next(kind string) string {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	n := c.counts[kind]
	c.counts[kind] = n + 1
	return fmt.Sprintf("%s#%d", kind, n)
}

func captureNode(c component.Component, counter *kindCounter) *SceneNode {
	node := &SceneNode{
		ID:   counter.next(c.Kind()),
		Kind: c.Kind(),
	}

	if props := captureProperties(c); len(props) > 0 {
		node.Properties = props
	}

	if parent, ok := c.(component.Parent); ok {
		for _, child := range parent.ChildComponents() {
			node.Children = append(node.Children, captureNode(child, counter))
		}
	}
	return node
}

// captureProperties reads every property ref except membership, which
// the Children list already carries.
func captureProperties(c component.Component) map[string]any {
	props := make(map[string]any)
	for _, ref := range c.Properties() {
		if ref.Name == "children" {
			continue
		}
		props[ref.Name] = serializeValue(ref.Value())
	}
	if len(props) == 0 {
		return nil
	}
	return props
}

func serializeValue(v any) any {
	switch x := v.(type) {
	case float64:
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return fmt.Sprintf("%v", x)
		}
		return round2(x)
	case float32:
		return round2(float64(x))
	case nil, string, bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return v
	default:
		return fmt.Sprintf("%v", x)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unifiedDiff produces a simple line-oriented diff.
func unifiedDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	maxLen := len(expectedLines)
	if len(actualLines) > maxLen {
		maxLen = len(actualLines)
	}

	for i := 0; i < maxLen; i++ {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e != a {
			if i < len(expectedLines) {
				fmt.Fprintf(&buf, "-%s\n", e)
			}
			if i < len(actualLines) {
				fmt.Fprintf(&buf, "+%s\n", a)
			}
		}
	}

	return buf.String()
}
