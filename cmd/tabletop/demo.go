package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-tabletop/tabletop/cmd/tabletop/internal/config"
	"github.com/go-tabletop/tabletop/pkg/animation"
	"github.com/go-tabletop/tabletop/pkg/component"
	"github.com/go-tabletop/tabletop/pkg/container"
	"github.com/go-tabletop/tabletop/pkg/diagnostics"
	"github.com/go-tabletop/tabletop/pkg/errors"
	"github.com/go-tabletop/tabletop/pkg/observable"
	"github.com/go-tabletop/tabletop/pkg/render"
	"github.com/go-tabletop/tabletop/pkg/scene"
)

func demoCmd() *cobra.Command {
	var (
		frames int
		tick   time.Duration
		addr   string
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the headless card-table demo",
		Long: `Run a card table without a display: deal a hand, flip cards on a
timer, and drive the render pipeline frame by frame.

While it runs, the diagnostics server exposes the live scene:

  /health      readiness probe
  /scene-tree  component tree with current property values
  /metrics     Prometheus metrics
  /watch       websocket stream of property changes

Examples:
  tabletop demo
  tabletop demo --frames=600 --addr=127.0.0.1:9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(frames, tick, addr)
		},
	}

	cmd.Flags().IntVar(&frames, "frames", 0, "Frames to run (default from tabletop.yaml)")
	cmd.Flags().DurationVar(&tick, "tick", 0, "Frame interval (default from tabletop.yaml)")
	cmd.Flags().StringVar(&addr, "addr", "", "Diagnostics listen address (default from tabletop.yaml)")

	return cmd
}

func runDemo(frames int, tick time.Duration, addr string) error {
	root, err := config.FindProjectRoot()
	if err != nil {
		// Outside a module the demo still runs, on defaults.
		root = "."
	}
	cfg, err := config.Resolve(root)
	if err != nil {
		return err
	}
	if frames > 0 {
		cfg.DemoFrames = frames
	}
	if tick > 0 {
		cfg.DemoTick = tick
	}
	if addr != "" {
		cfg.DiagnosticsAddr = addr
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	table, hand, cards, score := buildTable(cfg.AppName)

	var pipe render.Pipeline
	pipe.Attach(table)
	defer pipe.Detach()

	srv := diagnostics.NewServer(table, logger)
	bound, err := srv.Start(cfg.DiagnosticsAddr)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("diagnostics shutdown", "error", err)
		}
	}()

	fmt.Printf("%s: headless card table\n", cfg.AppName)
	info("diagnostics at http://%s/scene-tree", bound)
	info("frames: %d, tick: %s", cfg.DemoFrames, cfg.DemoTick)

	// One animator fades the most recently flipped card back in.
	fade := animation.TweenFloat64(0.25, 1)
	anim := animation.NewAnimator(200 * time.Millisecond)
	anim.Curve = animation.EaseInOut
	defer anim.Dispose()

	var active *component.CardView
	anim.Progress.AddListener(func(oldValue, newValue float64) {
		if active == nil {
			return
		}
		if err := active.Opacity.Set(fade.Evaluate(newValue)); err != nil {
			errors.Report(&errors.FrameworkError{Op: "demo.fade", Kind: errors.KindAnimation, Err: err})
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	flips := 0
	rendered := 0
loop:
	for frame := 0; frame < cfg.DemoFrames; frame++ {
		select {
		case <-ctx.Done():
			logger.Info("interrupted", "frame", frame)
			break loop
		default:
		}

		srv.Frame(func() {
			animation.StepTickers()

			if frame%24 == 0 {
				card := cards[flips%len(cards)]
				card.Flip()
				active = card
				anim.Reset()
				anim.Forward()
				flips++
				score.Text.Set(fmt.Sprintf("score: %d", flips*5))
			}

			// Halfway through, draw a fresh card into the hand. The
			// pipeline and the diagnostics server pick it up on their
			// own.
			if frame == cfg.DemoFrames/2 {
				drawn := component.NewCardView("A", component.SuitSpades)
				drawn.FaceUp.Set(true)
				cards = append(cards, drawn)
				hand.Add(drawn)
			}

			flushStart := time.Now()
			invalidations := pipe.Flush()
			srv.Metrics().ObserveFlush(time.Since(flushStart), len(invalidations))
		})
		rendered++
		time.Sleep(cfg.DemoTick)
	}

	stats := observable.ReadStats()
	success("demo finished")
	info("frames rendered: %d", rendered)
	info("cards flipped: %d", flips)
	info("listener invocations: user=%d internal=%d gui=%d",
		stats.UserInvocations, stats.InternalInvocations, stats.GUIInvocations)
	return nil
}

// buildTable assembles the demo scene: a title, a score label, and a
// horizontal hand of five cards.
func buildTable(name string) (*scene.Scene, *container.LinearLayout, []*component.CardView, *component.Label) {
	table := scene.NewScene(960, 540)

	title := component.NewLabel(name)
	title.Reposition(24, 16)
	table.Add(title)

	score := component.NewLabel("score: 0")
	score.Reposition(24, 48)
	table.Add(score)

	layout := container.NewLinearLayout(container.Horizontal)
	layout.Spacing.Set(12)
	layout.Reposition(24, 96)

	deal := []struct {
		rank string
		suit component.Suit
	}{
		{"A", component.SuitHearts},
		{"K", component.SuitSpades},
		{"Q", component.SuitDiamonds},
		{"J", component.SuitClubs},
		{"10", component.SuitHearts},
	}
	cards := make([]*component.CardView, 0, len(deal))
	for _, d := range deal {
		card := component.NewCardView(d.rank, d.suit)
		cards = append(cards, card)
		layout.Add(card)
	}
	table.Add(layout)

	return table, layout, cards, score
}
