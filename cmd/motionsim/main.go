package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/delaneyj/scrollsignals/config"
	"github.com/delaneyj/scrollsignals/frame"
	"github.com/delaneyj/scrollsignals/motion"
	"github.com/delaneyj/scrollsignals/sim"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

const (
	contentHeightKey  = "content-height"
	viewportWidthKey  = "viewport-width"
	viewportHeightKey = "viewport-height"
	scrollToKey       = "scroll-to"
	durationKey       = "duration"
	settleKey         = "settle"
	fpsKey            = "fps"
	eventsKey         = "events-per-frame"
	velocityScaleKey  = "velocity-scale"
	stiffnessKey      = "stiffness"
	dampingKey        = "damping"
	massKey           = "mass"
	tilesKey          = "tiles"
	everyKey          = "every"
	realtimeKey       = "realtime"
	verboseKey        = "verbose"
)

func main() {
	env, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	cmd := &cli.Command{
		Name:  "motionsim",
		Usage: "Replay a scripted scroll through the motion engine and print what every consumer did",
		Flags: []cli.Flag{
			&cli.FloatFlag{Name: contentHeightKey, Usage: "Document height in pixels", Value: 4000},
			&cli.FloatFlag{Name: viewportWidthKey, Usage: "Viewport width in pixels", Value: 1280},
			&cli.FloatFlag{Name: viewportHeightKey, Usage: "Viewport height in pixels", Value: 800},
			&cli.FloatFlag{Name: scrollToKey, Usage: "Offset the script scrolls to", Value: 3200},
			&cli.DurationFlag{Name: durationKey, Usage: "How long the scripted scroll takes", Value: 1500 * time.Millisecond},
			&cli.DurationFlag{Name: settleKey, Usage: "Extra time after the script for springs and reveals to finish", Value: time.Second},
			&cli.IntFlag{Name: fpsKey, Usage: "Frame rate", Value: int64(env.FPS)},
			&cli.IntFlag{Name: eventsKey, Usage: "Scroll events fired between frames", Value: 4},
			&cli.FloatFlag{Name: velocityScaleKey, Usage: "Velocity multiplier", Value: env.VelocityScale},
			&cli.FloatFlag{Name: stiffnessKey, Usage: "Position spring stiffness", Value: env.PositionStiffness},
			&cli.FloatFlag{Name: dampingKey, Usage: "Position spring damping", Value: env.PositionDamping},
			&cli.FloatFlag{Name: massKey, Usage: "Position spring mass", Value: env.PositionMass},
			&cli.IntFlag{Name: tilesKey, Usage: "Children in the staggered grid", Value: 4},
			&cli.IntFlag{Name: everyKey, Usage: "Print every Nth frame", Value: 4},
			&cli.BoolFlag{Name: realtimeKey, Usage: "Run against a wall-clock frame loop instead of a manual clock"},
			&cli.BoolFlag{Name: verboseKey, Usage: "Log provider lifecycle", Value: env.Verbose},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			env.VelocityScale = cmd.Float(velocityScaleKey)
			env.PositionStiffness = cmd.Float(stiffnessKey)
			env.PositionDamping = cmd.Float(dampingKey)
			env.PositionMass = cmd.Float(massKey)
			env.FPS = int(cmd.Int(fpsKey))
			env.Verbose = cmd.Bool(verboseKey)
			if env.FPS <= 0 {
				return fmt.Errorf("--%s must be positive", fpsKey)
			}

			doc := sim.NewDocument(cmd.Float(contentHeightKey), cmd.Float(viewportWidthKey), cmd.Float(viewportHeightKey))
			script, err := sim.Linear(0, cmd.Float(scrollToKey), cmd.Duration(durationKey))
			if err != nil {
				return err
			}
			r := &run{
				cfg:    motion.FromMotionConfig(env),
				doc:    doc,
				script: script,
				settle: cmd.Duration(settleKey),
				fps:    env.FPS,
				events: int(max(1, cmd.Int(eventsKey))),
				tiles:  int(max(0, cmd.Int(tilesKey))),
				every:  int(max(1, cmd.Int(everyKey))),
			}
			if cmd.Bool(realtimeKey) {
				return r.realtime(ctx)
			}
			return r.replay()
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

type run struct {
	cfg    motion.Config
	doc    *sim.Document
	script *sim.Script
	settle time.Duration
	fps    int
	events int
	tiles  int
	every  int
}

// replay plays the script on a manual clock, so output is deterministic.
func (r *run) replay() error {
	start := time.Now()
	log.Printf("replay started")

	clock := frame.NewManualClock()
	sc, err := newScene(r.doc, clock, r.cfg, r.tiles)
	if err != nil {
		return err
	}
	defer sc.close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(frameHeader)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	player := &sim.Player{
		Doc:            r.doc,
		Clock:          clock,
		FrameStep:      time.Second / time.Duration(r.fps),
		EventsPerFrame: r.events,
	}
	frames := player.Play(r.script, r.settle, func(fi sim.FrameInfo) {
		sc.hover(fi.Now)
		if fi.Index%r.every == 0 {
			table.Append(sc.frameRow(fi))
		}
	})
	table.Render()

	printElements(sc)
	log.Printf(
		"replay finished: %s frames, %s scroll events, %s flushes in %v",
		humanize.Comma(int64(frames)),
		humanize.Comma(int64(r.doc.Events())),
		humanize.Comma(int64(sc.p.Sampler().Flushes())),
		time.Since(start),
	)
	return nil
}

// realtime runs the same page against a wall-clock loop. Scroll events come
// from another goroutine and are posted onto the loop.
func (r *run) realtime(ctx context.Context) error {
	loop := frame.NewLoop(r.fps)
	sc, err := newScene(r.doc, loop, r.cfg, r.tiles)
	if err != nil {
		return err
	}
	defer sc.close()

	ctx, cancel := context.WithTimeout(ctx, r.script.Duration()+r.settle)
	defer cancel()

	origin := time.Now()
	go func() {
		ticker := time.NewTicker(loop.Interval() / time.Duration(r.events))
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case tick := <-ticker.C:
				offset := r.script.OffsetAt(tick.Sub(origin))
				if err := loop.Post(ctx, func() { r.doc.ScrollTo(offset) }); err != nil {
					return
				}
			}
		}
	}()

	index := 0
	var report frame.Callback
	report = func(now time.Duration) {
		sc.hover(now)
		if index%r.every == 0 {
			row := sc.frameRow(sim.FrameInfo{Index: index, Now: now, Offset: r.doc.ScrollOffset(), Events: r.doc.Events()})
			log.Print(row)
		}
		index++
		loop.RequestFrame(report)
	}
	loop.RequestFrame(report)

	if err := loop.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	printElements(sc)
	log.Printf("realtime finished: %s frames, %s flushes", humanize.Comma(int64(index)), humanize.Comma(int64(sc.p.Sampler().Flushes())))
	return nil
}

var frameHeader = []string{
	"frame", "t", "events", "offset", "smoothed", "velocity", "progress",
	"backdrop", "skew", "magnet", "card", "tiles",
}

func (sc *scene) frameRow(fi sim.FrameInfo) []string {
	signals := sc.p.Signals()
	mx, _ := sc.button.Offset()
	return []string{
		humanize.Comma(int64(fi.Index)),
		fi.Now.Round(time.Millisecond).String(),
		humanize.Comma(int64(fi.Events)),
		humanize.FormatFloat("#,###.#", fi.Offset),
		humanize.FormatFloat("#,###.#", signals.Position.Value()),
		humanize.FormatFloat("#,###.##", signals.Velocity.Value()),
		fmt.Sprintf("%.1f%%", 100*signals.Progress.Value()),
		humanize.FormatFloat("#,###.#", sc.backdrop.Offset().Value()),
		humanize.FormatFloat("#.##", sc.headline.Skew().Value()),
		humanize.FormatFloat("#.#", mx),
		sc.card.State().Value().String(),
		fmt.Sprintf("%d/%d", sc.visibleTiles(), len(sc.grid.Children())),
	}
}

func printElements(sc *scene) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"element", "renders", "style"})
	table.SetAutoWrapText(false)
	for _, el := range sc.elements {
		table.Append([]string{
			el.Name,
			humanize.Comma(int64(len(el.Styles()))),
			el.Last().CSS(),
		})
	}
	table.Render()
}
