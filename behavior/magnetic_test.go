package behavior_test

import (
	"testing"

	"github.com/delaneyj/scrollsignals/behavior"
	"github.com/delaneyj/scrollsignals/sim"
	"github.com/delaneyj/scrollsignals/spring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMagneticFollowsPointer(t *testing.T) {
	pg := newPage(t)
	el := sim.NewElement("button", behavior.Rect{X: 100, Y: 100, W: 200, H: 100})
	mag, err := behavior.Magnetic(pg.ctx, el, behavior.MagneticConfig{Strength: 0.5})
	require.NoError(t, err)
	assert.Equal(t, 1, el.PointerListenerCount())

	el.PointerMove(300, 150)
	x, y := mag.Target()
	assert.Equal(t, 50.0, x)
	assert.Equal(t, 0.0, y)

	pg.frames(1)
	ox, _ := mag.Offset()
	assert.Greater(t, ox, 0.0)
	assert.Less(t, ox, 50.0, "the spring trails the pointer")

	pg.frames(200)
	assert.True(t, mag.Settled())
	ox, oy := mag.Offset()
	assert.InDelta(t, 50.0, ox, 0.01)
	assert.InDelta(t, 0.0, oy, 0.01)
	assert.InDelta(t, 50.0, el.Last().TranslateX, 0.01)

	el.PointerLeave()
	pg.frames(200)
	ox, oy = mag.Offset()
	assert.InDelta(t, 0.0, ox, 0.01)
	assert.InDelta(t, 0.0, oy, 0.01)
}

func TestMagneticClampsToBounds(t *testing.T) {
	pg := newPage(t)
	el := sim.NewElement("button", behavior.Rect{X: 100, Y: 100, W: 200, H: 100})
	mag, err := behavior.Magnetic(pg.ctx, el, behavior.MagneticConfig{Strength: 0.5})
	require.NoError(t, err)

	mag.PointerMove(10_000, -10_000)
	x, y := mag.Target()
	assert.Equal(t, 50.0, x)
	assert.Equal(t, -25.0, y)
}

func TestMagneticDefaults(t *testing.T) {
	pg := newPage(t)
	el := sim.NewElement("button", behavior.Rect{W: 100, H: 100})
	mag, err := behavior.Magnetic(pg.ctx, el, behavior.MagneticConfig{})
	require.NoError(t, err)
	mag.PointerMove(100, 50)
	x, _ := mag.Target()
	assert.InDelta(t, 50*behavior.DefaultMagneticStrength, x, 1e-9)
}

func TestMagneticRejectsBadSpring(t *testing.T) {
	pg := newPage(t)
	_, err := behavior.Magnetic(pg.ctx, sim.NewElement("button", behavior.Rect{}), behavior.MagneticConfig{
		Spring: spring.Config{Stiffness: -1, Damping: 1, Mass: 1},
	})
	assert.ErrorIs(t, err, spring.ErrInvalidConfig)
}

func TestMagneticDisposeRemovesPointerListener(t *testing.T) {
	pg := newPage(t)
	el := sim.NewElement("button", behavior.Rect{W: 100, H: 100})
	mag, err := behavior.Magnetic(pg.ctx, el, behavior.MagneticConfig{})
	require.NoError(t, err)
	mag.Dispose()
	assert.Equal(t, 0, el.PointerListenerCount())

	applied := len(el.Styles())
	mag.PointerMove(100, 100)
	pg.frames(30)
	assert.Len(t, el.Styles(), applied)
}
