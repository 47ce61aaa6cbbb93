package sim_test

import (
	"testing"
	"time"

	"github.com/delaneyj/scrollsignals/behavior"
	"github.com/delaneyj/scrollsignals/frame"
	"github.com/delaneyj/scrollsignals/interp"
	"github.com/delaneyj/scrollsignals/motion"
	"github.com/delaneyj/scrollsignals/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentScrollTo(t *testing.T) {
	doc := sim.NewDocument(2000, 800, 500)
	assert.Equal(t, 1500.0, doc.MaxScrollable())

	var got []float64
	remove := doc.AddScrollListener(func(offset float64) {
		got = append(got, offset)
	})
	assert.Equal(t, 1, doc.ListenerCount())

	doc.ScrollTo(300)
	doc.ScrollTo(-50)
	doc.ScrollTo(9000)
	assert.Equal(t, []float64{300, 0, 1500}, got)
	assert.Equal(t, 3, doc.Events())

	remove()
	assert.Equal(t, 0, doc.ListenerCount())
	doc.ScrollTo(10)
	assert.Len(t, got, 3)
}

func TestDocumentShortPage(t *testing.T) {
	doc := sim.NewDocument(2000, 800, 500)
	doc.Resize(300, 800, 500)
	assert.Equal(t, -200.0, doc.MaxScrollable())
	doc.ScrollTo(100)
	assert.Equal(t, 0.0, doc.ScrollOffset())
	w, h := doc.ViewportSize()
	assert.Equal(t, 800.0, w)
	assert.Equal(t, 500.0, h)
}

func TestElementRecordsStyles(t *testing.T) {
	el := sim.NewElement("card", behavior.Rect{W: 10, H: 10})
	assert.Equal(t, behavior.Identity(), el.Last())

	s := behavior.Identity()
	s.Opacity = 0.5
	el.Apply(s)
	assert.Equal(t, s, el.Last())
	assert.Len(t, el.Styles(), 1)

	var kinds []behavior.PointerKind
	remove := el.AddPointerListener(func(ev behavior.PointerEvent) {
		kinds = append(kinds, ev.Kind)
	})
	el.PointerMove(1, 2)
	el.PointerLeave()
	remove()
	el.PointerMove(3, 4)
	assert.Equal(t, []behavior.PointerKind{behavior.PointerMove, behavior.PointerLeave}, kinds)
	assert.Equal(t, 0, el.PointerListenerCount())
}

func TestScript(t *testing.T) {
	s, err := sim.Linear(0, 1000, time.Second)
	require.NoError(t, err)
	assert.Equal(t, time.Second, s.Duration())
	assert.Equal(t, 0.0, s.OffsetAt(-time.Second))
	assert.InDelta(t, 500.0, s.OffsetAt(500*time.Millisecond), 1e-9)
	assert.Equal(t, 1000.0, s.OffsetAt(3*time.Second))

	s, err = sim.NewScript(
		sim.Keyframe{At: 2 * time.Second, Offset: 0},
		sim.Keyframe{At: 0, Offset: 0},
		sim.Keyframe{At: time.Second, Offset: 800},
	)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, s.Duration())
	assert.InDelta(t, 400.0, s.OffsetAt(1500*time.Millisecond), 1e-9)

	s, err = sim.NewScript(sim.Keyframe{At: time.Second, Offset: 42})
	require.NoError(t, err)
	assert.Equal(t, 42.0, s.OffsetAt(0))
	assert.Equal(t, 42.0, s.OffsetAt(time.Hour))
}

func TestScriptErrors(t *testing.T) {
	_, err := sim.NewScript()
	assert.Error(t, err)

	_, err = sim.NewScript(
		sim.Keyframe{At: time.Second, Offset: 0},
		sim.Keyframe{At: time.Second, Offset: 100},
	)
	assert.ErrorIs(t, err, interp.ErrRangeOrder)
}

func TestPlayerCoalescesEventsPerFrame(t *testing.T) {
	doc := sim.NewDocument(3000, 800, 600)
	clock := frame.NewManualClock()
	p, err := motion.NewProvider(doc, clock, motion.DefaultConfig())
	require.NoError(t, err)
	defer p.Close()

	script, err := sim.Linear(0, 1000, 160*time.Millisecond)
	require.NoError(t, err)
	player := &sim.Player{
		Doc:            doc,
		Clock:          clock,
		FrameStep:      16 * time.Millisecond,
		EventsPerFrame: 3,
	}

	var infos []sim.FrameInfo
	frames := player.Play(script, 0, func(fi sim.FrameInfo) {
		infos = append(infos, fi)
	})
	assert.Equal(t, 10, frames)
	require.Len(t, infos, 10)
	assert.Equal(t, 9, infos[9].Index)
	assert.Equal(t, 160*time.Millisecond, infos[9].Now)
	assert.InDelta(t, 1000.0, infos[9].Offset, 1e-9)
	assert.Equal(t, 30, infos[9].Events)

	assert.Equal(t, frames, p.Sampler().Flushes(), "one flush per frame however many events")
	assert.InDelta(t, 1000.0, p.Signals().RawPosition.Value(), 1e-9)
}

func TestPlayerSettle(t *testing.T) {
	doc := sim.NewDocument(3000, 800, 600)
	clock := frame.NewManualClock()
	p, err := motion.NewProvider(doc, clock, motion.DefaultConfig())
	require.NoError(t, err)
	defer p.Close()

	script, err := sim.Linear(0, 600, 100*time.Millisecond)
	require.NoError(t, err)
	player := &sim.Player{Doc: doc, Clock: clock}
	player.Play(script, 2*time.Second, nil)

	assert.InDelta(t, 600.0, p.Signals().Position.Value(), 0.01)
}
