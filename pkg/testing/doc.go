// Package testing provides a scene testing harness for Tabletop.
//
// # Quick Start
//
// Create a tester, build a scene, and pump frames:
//
//	func TestScoreboard(t *testing.T) {
//	    tester := tabletoptest.NewSceneTesterWithT(t)
//
//	    score := component.NewLabel("score: 0")
//	    tester.Scene().Add(score)
//	    tester.Pump()
//
//	    score.Text.Set("score: 5")
//	    if inv := tester.Pump(); len(inv) == 0 {
//	        t.Error("expected the label change to invalidate")
//	    }
//
//	    if !tester.Find(tabletoptest.ByText("score: 5")).Exists() {
//	        t.Error("expected 'score: 5' label")
//	    }
//	}
//
// # Snapshot Testing
//
// Capture and compare scene tree snapshots:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/scoreboard.snapshot.json")
//
// Update snapshots with:
//
//	TABLETOP_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Animation Testing
//
// Control time for deterministic animation tests:
//
//	tester.Clock().Advance(100 * time.Millisecond)
//	tester.Pump()
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import tabletoptest "github.com/go-tabletop/tabletop/pkg/testing"
package testing
