package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/delaneyj/scrollsignals/behavior"
	"github.com/delaneyj/scrollsignals/frame"
	"github.com/delaneyj/scrollsignals/motion"
	"github.com/delaneyj/scrollsignals/signal"
	"github.com/delaneyj/scrollsignals/sim"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
)

var pgoPath = flag.String("pgo", "default.pgo", "CPU profile output")

func main() {
	flag.Parse()

	f, err := os.Create(*pgoPath)
	if err != nil {
		log.Fatal(err)
	}
	pprof.StartCPUProfile(f)
	defer pprof.StopCPUProfile()

	log.Printf("warming up")
	benchmarkPropagate(false)

	benchmarkPropagate(true)
	benchmarkPage(true)
	benchmarkSprings(true)
}

var (
	ww    = []int{1, 10, 100, 1_000}
	hh    = []int{1, 10, 100}
	nn    = []int{1, 10, 100, 1_000}
	iters = 100
)

func addOne(v float64) float64 {
	return v + 1
}

func newTable(title string) table.Writer {
	tbl := table.NewWriter()
	tbl.SetTitle(title)
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})
	return tbl
}

func appendCalc(tbl table.Writer, name string, tach *tachymeter.Tachymeter) {
	calc := tach.Calc()
	tbl.AppendRow(table.Row{
		name,
		calc.Time.Avg,
		calc.Time.Min,
		calc.Time.P75,
		calc.Time.P99,
		calc.Time.Max,
	})
}

// benchmarkPropagate measures one root write fanning out to w chains of h
// derived signals, each ending in an effect.
func benchmarkPropagate(shouldRender bool) {
	tbl := newTable("Root propagation")

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			rs := signal.NewSystem()
			src := signal.Signal(rs, 1.0)
			for range w {
				var last signal.Readable[float64] = src
				for range h {
					last = signal.Computed1(rs, last, addOne)
				}
				signal.Effect1(last, func(float64) {})
			}

			for range iters {
				start := time.Now()
				src.SetValue(src.Value() + 1)
				tach.AddTime(time.Since(start))
			}
			appendCalc(tbl, fmt.Sprintf("propagate: %d * %d", w, h), tach)
		}
	}

	if shouldRender {
		tbl.Render()
	}
}

// benchmarkPage measures a scroll event plus the frame that flushes it, with n
// parallax layers and n skewed elements bound to the roots.
func benchmarkPage(shouldRender bool) {
	tbl := newTable("Scroll flush")

	for _, n := range nn {
		tach := tachymeter.New(&tachymeter.Config{Size: iters})

		doc := sim.NewDocument(100_000, 1280, 800)
		clock := frame.NewManualClock()
		p, err := motion.NewProvider(doc, clock, motion.DefaultConfig())
		if err != nil {
			log.Fatal(err)
		}
		ctx := p.Mount(context.Background())
		for i := range n {
			r := behavior.Rect{Y: float64(i) * 100, W: 1280, H: 100}
			if _, err := behavior.Parallax(ctx, sim.NewElement("layer", r), behavior.ParallaxConfig{Speed: 0.3}); err != nil {
				log.Fatal(err)
			}
			if _, err := behavior.VelocitySkew(ctx, sim.NewElement("skew", r), behavior.SkewConfig{}); err != nil {
				log.Fatal(err)
			}
		}
		clock.Step(0)

		step := time.Second / 60
		for i := range iters {
			start := time.Now()
			doc.ScrollTo(float64(i+1) * 37)
			clock.Step(step)
			tach.AddTime(time.Since(start))
		}
		p.Close()
		appendCalc(tbl, fmt.Sprintf("flush: %d layers", n), tach)
	}

	if shouldRender {
		tbl.Render()
	}
}

// benchmarkSprings measures frames with n magnetic springs in motion.
func benchmarkSprings(shouldRender bool) {
	tbl := newTable("Spring frames")

	for _, n := range nn {
		tach := tachymeter.New(&tachymeter.Config{Size: iters})

		doc := sim.NewDocument(2000, 1280, 800)
		clock := frame.NewManualClock()
		p, err := motion.NewProvider(doc, clock, motion.DefaultConfig())
		if err != nil {
			log.Fatal(err)
		}
		ctx := p.Mount(context.Background())
		buttons := make([]*behavior.MagneticBinding, n)
		for i := range buttons {
			el := sim.NewElement("button", behavior.Rect{X: float64(i%10) * 120, Y: float64(i/10) * 60, W: 100, H: 40})
			if buttons[i], err = behavior.Magnetic(ctx, el, behavior.MagneticConfig{}); err != nil {
				log.Fatal(err)
			}
		}
		clock.Step(0)

		step := time.Second / 60
		for i := range iters {
			if i%20 == 0 {
				for _, b := range buttons {
					r := b.Element().Bounds()
					b.PointerMove(r.X+r.W, r.Y+r.H)
				}
			}
			start := time.Now()
			clock.Step(step)
			tach.AddTime(time.Since(start))
		}
		p.Close()
		appendCalc(tbl, fmt.Sprintf("springs: %d magnetic", n), tach)
	}

	if shouldRender {
		tbl.Render()
	}
}
