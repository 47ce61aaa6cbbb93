package behavior_test

import (
	"testing"

	"github.com/delaneyj/scrollsignals/behavior"
	"github.com/delaneyj/scrollsignals/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressBarScalesFromLeft(t *testing.T) {
	pg := newPage(t)
	el := sim.NewElement("bar", behavior.Rect{W: 800, H: 4})
	bar, err := behavior.ProgressBar(pg.ctx, el, behavior.ProgressBarConfig{})
	require.NoError(t, err)

	first := el.Last()
	assert.Equal(t, 0.0, first.ScaleX)
	assert.Equal(t, "left", first.Origin)
	assert.Equal(t, behavior.DefaultProgressColor, first.Background)

	pg.scroll(600)
	assert.Equal(t, 0.25, bar.Scale().Value())
	assert.Equal(t, 0.25, el.Last().ScaleX)

	pg.scroll(5000)
	assert.Equal(t, 1.0, el.Last().ScaleX)
}

func TestProgressBarColor(t *testing.T) {
	pg := newPage(t)
	el := sim.NewElement("bar", behavior.Rect{W: 800, H: 4})
	bar, err := behavior.ProgressBar(pg.ctx, el, behavior.ProgressBarConfig{Color: "#FF0066"})
	require.NoError(t, err)
	assert.Equal(t, "#ff0066", el.Last().Background)
	assert.Equal(t, "#ff0066", bar.Color().Hex())

	_, err = behavior.ProgressBar(pg.ctx, el, behavior.ProgressBarConfig{Color: "indigo"})
	assert.Error(t, err)
	assert.Equal(t, 1, pg.p.LiveBindings())
}
