// The tabletop showcase plays blackjack against itself on a headless
// card table. Every piece of game state is an observable property, so
// the whole session is visible from the outside: point a browser at the
// scene tree, stream property changes over the watch socket, or scrape
// the Prometheus metrics while the table runs.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-tabletop/tabletop/pkg/animation"
	"github.com/go-tabletop/tabletop/pkg/diagnostics"
	"github.com/go-tabletop/tabletop/pkg/observable"
	"github.com/go-tabletop/tabletop/pkg/render"
)

func main() {
	var (
		addr   = flag.String("addr", "127.0.0.1:8089", "diagnostics listen address")
		rounds = flag.Int("rounds", 0, "rounds to play before exiting (0 = until interrupted)")
		tick   = flag.Duration("tick", 50*time.Millisecond, "frame interval")
		seed   = flag.Int64("seed", 0, "shuffle seed (0 = time-based)")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(*addr, *rounds, *tick, *seed, logger); err != nil {
		logger.Error("showcase failed", "error", err)
		os.Exit(1)
	}
}

func run(addr string, rounds int, tick time.Duration, seed int64, logger *slog.Logger) error {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	table := NewTable(rand.New(rand.NewSource(seed)))

	var pipe render.Pipeline
	pipe.Attach(table.Scene)
	defer pipe.Detach()

	srv := diagnostics.NewServer(table.Scene, logger)
	bound, err := srv.Start(addr)
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

	fmt.Println("tabletop showcase: blackjack on a headless table")
	fmt.Printf("  scene tree  http://%s/scene-tree\n", bound)
	fmt.Printf("  watch       ws://%s/watch\n", bound)
	fmt.Printf("  metrics     http://%s/metrics\n", bound)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The table advances one act every actFrames frames, slow enough to
	// follow on the watch socket.
	const actFrames = 8
	frame := 0
loop:
	for {
		select {
		case <-ctx.Done():
			logger.Info("interrupted", "frame", frame)
			break loop
		default:
		}

		srv.Frame(func() {
			animation.StepTickers()
			if frame%actFrames == 0 {
				table.Step()
			}

			flushStart := time.Now()
			invalidations := pipe.Flush()
			srv.Metrics().ObserveFlush(time.Since(flushStart), len(invalidations))
		})
		frame++

		if rounds > 0 && table.RoundsPlayed() >= rounds {
			break
		}
		time.Sleep(tick)
	}

	wins, losses, pushes := table.Book()
	stats := observable.ReadStats()
	logger.Info("table closed",
		"rounds", table.RoundsPlayed(),
		"wins", wins, "losses", losses, "pushes", pushes,
		"user_invocations", stats.UserInvocations,
		"internal_invocations", stats.InternalInvocations,
		"gui_invocations", stats.GUIInvocations,
	)
	return nil
}
