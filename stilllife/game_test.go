package stilllife

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/stilllife/engine"
	"github.com/spaghettifunk/stilllife/engine/core"
	"github.com/spaghettifunk/stilllife/engine/renderer/metadata"
	"github.com/spaghettifunk/stilllife/engine/renderer/recorder"
)

// scriptedWindow replays key presses, one entry per PumpMessages call,
// and closes once the script runs out.
type scriptedWindow struct {
	width, height uint32
	script        [][]core.KeyCode
	pumps         int
	closed        bool
}

func (w *scriptedWindow) Startup(name string, x, y, width, height uint32) error {
	w.width, w.height = width, height
	return nil
}

func (w *scriptedWindow) Shutdown() {}

func (w *scriptedWindow) PumpMessages() error {
	if w.pumps < len(w.script) {
		for _, key := range w.script[w.pumps] {
			core.InputProcessKey(key, true)
			core.InputProcessKey(key, false)
		}
	}
	w.pumps++
	if w.pumps >= len(w.script) {
		w.closed = true
	}
	return nil
}

func (w *scriptedWindow) ShouldClose() bool { return w.closed }

func (w *scriptedWindow) RequestClose() { w.closed = true }

func (w *scriptedWindow) FramebufferSize() (uint32, uint32) { return w.width, w.height }

func runGame(t *testing.T, script [][]core.KeyCode) (*StillLife, *recorder.Backend) {
	t.Helper()
	game := NewStillLife(writeAssets(t), core.ErrorLevel, false)
	backend := recorder.New()
	e, err := engine.New(game.Game, &scriptedWindow{script: script}, backend)
	require.NoError(t, err)
	t.Cleanup(func() { e.Shutdown() })

	require.NoError(t, e.Initialize())
	require.NoError(t, e.Run(context.Background()))
	return game, backend
}

func TestStillLifeConfig(t *testing.T) {
	game := NewStillLife("assets", core.InfoLevel, true)
	config := game.ApplicationConfig
	assert.Equal(t, WindowTitle, config.Name)
	assert.Equal(t, uint32(600), config.StartWidth)
	assert.Equal(t, uint32(600), config.StartHeight)
	assert.True(t, config.HotReload)
	assert.ElementsMatch(t, []metadata.ShapeKind{
		metadata.ShapeQuad, metadata.ShapeTeapot, metadata.ShapeSphere, metadata.ShapeCone, metadata.ShapeCylinder,
	}, game.Shapes)
}

func TestStillLifeDrawsOnceWhenIdle(t *testing.T) {
	_, backend := runGame(t, make([][]core.KeyCode, 4))
	assert.Equal(t, 1, backend.Frames)
	require.Len(t, backend.Draws, 19)
	assert.Equal(t, metadata.BUILTIN_SHADER_NAME_TEXTURE, backend.Draws[0].Shader)
	assert.Equal(t, metadata.ShapeTeapot, backend.Draws[16].Shape)
}

func TestStillLifeAnimationKeys(t *testing.T) {
	script := [][]core.KeyCode{
		{core.KEY_A}, {}, {}, {core.KEY_S}, {}, {},
	}
	game, backend := runGame(t, script)
	animator := game.state().animator

	// the first frame, then one per tick while running
	assert.Equal(t, 4, backend.Frames)
	assert.Equal(t, 4*19, len(backend.Draws))
	assert.False(t, animator.Running())
	assert.Equal(t, float32(3), animator.Angle())

	last := backend.Draws[len(backend.Draws)-3]
	assert.Equal(t, metadata.ShapeTeapot, last.Shape)
}

func TestStillLifeResetRedraws(t *testing.T) {
	script := [][]core.KeyCode{
		{core.KEY_A}, {}, {core.KEY_R}, {}, {},
	}
	game, backend := runGame(t, script)
	animator := game.state().animator

	assert.False(t, animator.Running())
	assert.Zero(t, animator.Angle())
	assert.Equal(t, 4, backend.Frames)
}
