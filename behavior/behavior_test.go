package behavior_test

import (
	"context"
	"testing"
	"time"

	"github.com/delaneyj/scrollsignals/behavior"
	"github.com/delaneyj/scrollsignals/frame"
	"github.com/delaneyj/scrollsignals/motion"
	"github.com/delaneyj/scrollsignals/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frameStep = 16 * time.Millisecond

type page struct {
	ctx   context.Context
	p     *motion.Provider
	doc   *sim.Document
	clock *frame.ManualClock
}

// newPage mounts a provider over a 3000px document in an 800x600 viewport.
func newPage(t *testing.T) *page {
	t.Helper()
	doc := sim.NewDocument(3000, 800, 600)
	clock := frame.NewManualClock()
	p, err := motion.NewProvider(doc, clock, motion.DefaultConfig())
	require.NoError(t, err)
	t.Cleanup(p.Close)
	clock.Step(0)
	return &page{
		ctx:   p.Mount(context.Background()),
		p:     p,
		doc:   doc,
		clock: clock,
	}
}

func (pg *page) scroll(offset float64) {
	pg.doc.ScrollTo(offset)
	pg.clock.Step(frameStep)
}

func (pg *page) frames(n int) {
	pg.clock.Run(n, frameStep)
}

func assertPanicsNamingProvider(t *testing.T, caller string, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		require.NotNil(t, r, "%s must panic outside a provider", caller)
		err, ok := r.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, motion.ErrNoProvider)
		assert.Contains(t, err.Error(), caller)
	}()
	fn()
}

func TestConsumersOutsideProviderPanic(t *testing.T) {
	ctx := context.Background()
	el := sim.NewElement("x", behavior.Rect{W: 10, H: 10})

	assertPanicsNamingProvider(t, "Parallax", func() {
		behavior.Parallax(ctx, el, behavior.ParallaxConfig{Speed: 1})
	})
	assertPanicsNamingProvider(t, "Reveal", func() {
		behavior.Reveal(ctx, el, behavior.RevealConfig{})
	})
	assertPanicsNamingProvider(t, "StaggerGroup", func() {
		behavior.StaggerGroup(ctx, el, behavior.StaggerConfig{})
	})
	assertPanicsNamingProvider(t, "Magnetic", func() {
		behavior.Magnetic(ctx, el, behavior.MagneticConfig{})
	})
	assertPanicsNamingProvider(t, "VelocitySkew", func() {
		behavior.VelocitySkew(ctx, el, behavior.SkewConfig{})
	})
	assertPanicsNamingProvider(t, "ProgressBar", func() {
		behavior.ProgressBar(ctx, el, behavior.ProgressBarConfig{})
	})
}

func TestConsumerAfterProviderClosedPanics(t *testing.T) {
	pg := newPage(t)
	pg.p.Close()
	assert.PanicsWithError(t, "Parallax: "+motion.ErrClosed.Error(), func() {
		behavior.Parallax(pg.ctx, sim.NewElement("x", behavior.Rect{}), behavior.ParallaxConfig{})
	})
}

func TestRectIntersects(t *testing.T) {
	viewport := behavior.Rect{Y: 100, W: 800, H: 600}
	assert.True(t, viewport.Intersects(behavior.Rect{Y: 650, W: 10, H: 100}))
	assert.False(t, viewport.Intersects(behavior.Rect{Y: 701, W: 10, H: 100}))
	assert.True(t, viewport.Expand(5).Intersects(behavior.Rect{Y: 701, W: 10, H: 100}))
	x, y := behavior.Rect{X: 10, Y: 20, W: 100, H: 40}.Center()
	assert.Equal(t, 60.0, x)
	assert.Equal(t, 40.0, y)
}

func TestStyleCSS(t *testing.T) {
	assert.Equal(t,
		"transform: translate3d(0px, 0px, 0) scale(1) scaleX(1) scaleY(1) rotate(0deg) skewY(0deg); opacity: 1;",
		behavior.Identity().CSS(),
	)

	s := behavior.Identity()
	s.TranslateY = 12.5
	s.ScaleX = 0.25
	s.Origin = "left"
	s.Background = "#6366f1"
	assert.Equal(t,
		"transform: translate3d(0px, 12.5px, 0) scale(1) scaleX(0.25) scaleY(1) rotate(0deg) skewY(0deg); opacity: 1; transform-origin: left; background: #6366f1;",
		s.CSS(),
	)
}

func TestBindingDisposeUntracks(t *testing.T) {
	pg := newPage(t)
	el := sim.NewElement("bar", behavior.Rect{W: 800, H: 4})
	bar, err := behavior.ProgressBar(pg.ctx, el, behavior.ProgressBarConfig{})
	require.NoError(t, err)
	assert.Equal(t, 1, pg.p.LiveBindings())
	assert.Equal(t, "progress", bar.Kind())

	bar.Dispose()
	bar.Dispose()
	assert.True(t, bar.Disposed())
	assert.Equal(t, 0, pg.p.LiveBindings())

	applied := len(el.Styles())
	pg.scroll(1200)
	assert.Len(t, el.Styles(), applied, "a disposed binding receives no further pushes")
}

func TestProviderCloseDisposesLiveBindings(t *testing.T) {
	pg := newPage(t)
	el := sim.NewElement("layer", behavior.Rect{W: 800, H: 600})
	layer, err := behavior.Parallax(pg.ctx, el, behavior.ParallaxConfig{Speed: 1})
	require.NoError(t, err)

	pg.p.Close()
	assert.True(t, layer.Disposed())
	applied := len(el.Styles())
	for i := range 20 {
		pg.scroll(float64(i * 50))
	}
	assert.Len(t, el.Styles(), applied)
}
