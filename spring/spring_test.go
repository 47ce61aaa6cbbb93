package spring_test

import (
	"math"
	"testing"
	"time"

	"github.com/delaneyj/scrollsignals/frame"
	"github.com/delaneyj/scrollsignals/signal"
	"github.com/delaneyj/scrollsignals/spring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scrollSpring = spring.Config{Stiffness: 300, Damping: 40, Mass: 0.1}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, scrollSpring.Validate())
	assert.NoError(t, spring.Config{Stiffness: 1, Damping: 0, Mass: 1}.Validate())

	for _, cfg := range []spring.Config{
		{Stiffness: 0, Damping: 1, Mass: 1},
		{Stiffness: 1, Damping: -1, Mass: 1},
		{Stiffness: 1, Damping: 1, Mass: 0},
		{Stiffness: math.NaN(), Damping: 1, Mass: 1},
	} {
		assert.ErrorIs(t, cfg.Validate(), spring.ErrInvalidConfig, "%+v", cfg)
	}

	_, err := spring.NewIntegrator(spring.Config{}, 0)
	assert.ErrorIs(t, err, spring.ErrInvalidConfig)
}

func TestDampingRatio(t *testing.T) {
	assert.InDelta(t, 1.0, spring.Config{Stiffness: 100, Damping: 20, Mass: 1}.DampingRatio(), 1e-12)
	assert.Greater(t, scrollSpring.DampingRatio(), 1.0)
	assert.InDelta(t, math.Sqrt(3000), scrollSpring.AngularFrequency(), 1e-9)
}

func TestIntegratorConverges(t *testing.T) {
	cases := []struct {
		name string
		cfg  spring.Config
	}{
		{"scroll", scrollSpring},
		{"critical", spring.Config{Stiffness: 100, Damping: 20, Mass: 1}},
		{"magnetic", spring.Config{Stiffness: 150, Damping: 15, Mass: 0.1}},
		{"bouncy", spring.Config{Stiffness: 100, Damping: 6, Mass: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in, err := spring.NewIntegrator(tc.cfg, 0)
			require.NoError(t, err)

			settled := false
			frames := 0
			for ; frames < 2000 && !settled; frames++ {
				_, settled = in.Step(100, 16*time.Millisecond)
			}
			require.True(t, settled, "not settled after %d frames", frames)
			assert.Equal(t, 100.0, in.Position())
			assert.Equal(t, 0.0, in.Velocity())
		})
	}
}

func TestIntegratorNoOvershootWhenDamped(t *testing.T) {
	steps := []time.Duration{16 * time.Millisecond, 33 * time.Millisecond, 20 * time.Millisecond, 17 * time.Millisecond, 25 * time.Millisecond}
	for _, cfg := range []spring.Config{
		scrollSpring,
		{Stiffness: 100, Damping: 20, Mass: 1},
		{Stiffness: 500, Damping: 100, Mass: 1},
	} {
		in, err := spring.NewIntegrator(cfg, 0)
		require.NoError(t, err)
		prev := 0.0
		for i := range 500 {
			pos, _ := in.Step(500, steps[i%len(steps)])
			assert.LessOrEqual(t, pos, 500.0+1e-9)
			assert.GreaterOrEqual(t, pos, prev-1e-9, "monotone approach")
			prev = pos
		}
		assert.Equal(t, 500.0, in.Position())
	}
}

func TestIntegratorSkipsNonPositiveStep(t *testing.T) {
	in, err := spring.NewIntegrator(scrollSpring, 0)
	require.NoError(t, err)
	in.Step(100, 16*time.Millisecond)
	pos, vel := in.Position(), in.Velocity()

	in.Step(100, 0)
	in.Step(100, -time.Second)
	assert.Equal(t, pos, in.Position())
	assert.Equal(t, vel, in.Velocity())
}

func TestIntegratorClampsLongStep(t *testing.T) {
	a, err := spring.NewIntegrator(scrollSpring, 0)
	require.NoError(t, err)
	b, err := spring.NewIntegrator(scrollSpring, 0)
	require.NoError(t, err)

	a.Step(100, 10*time.Second)
	b.Step(100, spring.DefaultMaxStep)
	assert.Equal(t, b.Position(), a.Position())
}

func TestSpringFollowsTarget(t *testing.T) {
	rs := signal.NewSystem()
	clock := frame.NewManualClock()
	target := signal.Signal(rs, 0.0)

	s, err := spring.Follow(rs, clock, target.ReadOnly(), scrollSpring)
	require.NoError(t, err)
	assert.True(t, s.Settled())
	assert.Equal(t, 0, clock.Pending())

	var pushes []float64
	s.Subscribe(func(v float64) { pushes = append(pushes, v) })

	target.SetValue(500)
	assert.Equal(t, 0.0, s.Value(), "springs lag until the next frame")
	assert.Equal(t, 1, clock.Pending())

	clock.Step(16 * time.Millisecond)
	first := s.Value()
	assert.Greater(t, first, 0.0)
	assert.Less(t, first, 500.0)

	for range 1000 {
		if clock.Step(16*time.Millisecond) == 0 {
			break
		}
	}
	assert.Equal(t, 500.0, s.Value())
	assert.True(t, s.Settled())
	assert.Equal(t, 0, clock.Pending(), "a settled spring stops requesting frames")
	for _, v := range pushes {
		assert.LessOrEqual(t, v, 500.0+1e-9)
	}
}

func TestSpringOneRequestPerFrame(t *testing.T) {
	rs := signal.NewSystem()
	clock := frame.NewManualClock()
	target := signal.Signal(rs, 0.0)
	_, err := spring.Follow(rs, clock, target.ReadOnly(), scrollSpring)
	require.NoError(t, err)

	for i := range 100 {
		target.SetValue(float64(i))
	}
	assert.Equal(t, 1, clock.Pending())
}

func TestSpringJumpAndDispose(t *testing.T) {
	rs := signal.NewSystem()
	clock := frame.NewManualClock()
	target := signal.Signal(rs, 0.0)
	s, err := spring.Follow(rs, clock, target.ReadOnly(), scrollSpring)
	require.NoError(t, err)

	target.SetValue(100)
	s.Jump(100)
	assert.Equal(t, 100.0, s.Value())
	assert.Equal(t, 0, clock.Pending())

	target.SetValue(200)
	require.Equal(t, 1, clock.Pending())
	s.Dispose()
	assert.Equal(t, 0, clock.Pending())
	assert.Equal(t, 0, target.SubscriberCount())

	clock.Step(16 * time.Millisecond)
	assert.Equal(t, 100.0, s.Value())
}
