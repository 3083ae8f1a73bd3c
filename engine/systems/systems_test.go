package systems

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/stilllife/engine/assets"
	"github.com/spaghettifunk/stilllife/engine/renderer"
	"github.com/spaghettifunk/stilllife/engine/renderer/metadata"
	"github.com/spaghettifunk/stilllife/engine/renderer/recorder"
)

// rig is a headless renderer plus an asset directory holding the four
// shader sources and a small texture.
type rig struct {
	root     string
	backend  *recorder.Backend
	renderer *renderer.Renderer
	assets   *assets.AssetManager
}

func newRig(t *testing.T) *rig {
	t.Helper()
	root := t.TempDir()
	for _, name := range []string{"phong.vert", "phong.frag", "texture.vert", "texture.frag"} {
		writeAsset(t, filepath.Join(root, "shaders", name), "#version 410 core\nvoid main() {}\n")
	}
	writePNG(t, filepath.Join(root, "textures", "table.png"), 4, 2)

	am := assets.NewAssetManager()
	require.NoError(t, am.Initialize(root, false))
	t.Cleanup(func() { am.Shutdown() })

	backend := recorder.New()
	return &rig{
		root:     root,
		backend:  backend,
		renderer: renderer.NewRenderer(backend),
		assets:   am,
	}
}

func (r *rig) path(parts ...string) string {
	return filepath.Join(append([]string{r.root}, parts...)...)
}

func (r *rig) shaders(t *testing.T) *ShaderSystem {
	t.Helper()
	ss, err := NewShaderSystem(&ShaderSystemConfig{ShaderDir: r.path("shaders")}, r.assets, r.renderer)
	require.NoError(t, err)
	return ss
}

func (r *rig) materials(t *testing.T, library string) *MaterialSystem {
	t.Helper()
	ms, err := NewMaterialSystem(&MaterialSystemConfig{LibraryPath: library}, r.assets, r.renderer)
	require.NoError(t, err)
	require.NoError(t, ms.Initialize())
	return ms
}

// program creates the named builtin program and puts it in use.
func (r *rig) program(t *testing.T, ss *ShaderSystem, config *metadata.ShaderConfig) *metadata.Shader {
	t.Helper()
	shader, err := ss.CreateShader(config)
	require.NoError(t, err)
	require.NoError(t, r.renderer.ShaderUse(shader))
	return shader
}

func writeAsset(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(40 * x), G: uint8(80 * y), B: 200, A: 255})
		}
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func names(writes []recorder.UniformWrite) []string {
	out := make([]string, len(writes))
	for i, w := range writes {
		out[i] = w.Name
	}
	return out
}
