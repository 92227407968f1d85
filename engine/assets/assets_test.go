package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/lumina/engine/math"
	"github.com/spaghettifunk/lumina/engine/renderer/metadata"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

func setupAssets(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, SHADERS_DIR, "everything.v.glsl"), "vert")
	writeFile(t, filepath.Join(root, SHADERS_DIR, "everything.f.glsl"), "frag")
	writeFile(t, filepath.Join(root, MODELS_DIR, "tri.obj"), "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")
	writeFile(t, filepath.Join(root, "notes.txt"), "ignored")
	return root
}

func TestDetermineAssetType(t *testing.T) {
	assert.Equal(t, metadata.ResourceTypeShader, determineAssetType("a/b.v.glsl"))
	assert.Equal(t, metadata.ResourceTypeMesh, determineAssetType("cylinder.OBJ"))
	assert.Equal(t, metadata.ResourceTypeConfig, determineAssetType("rods.yaml"))
	assert.Equal(t, metadata.ResourceTypeNone, determineAssetType("readme.md"))
	assert.Equal(t, "everything", assetName("shaders/everything.f.glsl"))
}

func TestAssetManagerLoad(t *testing.T) {
	root := setupAssets(t)
	am, err := NewAssetManager()
	require.NoError(t, err)
	require.NoError(t, am.Initialize(root, false))
	defer am.Shutdown()

	_, ok := am.Asset(filepath.Join(root, MODELS_DIR, "tri.obj"))
	assert.True(t, ok)
	_, ok = am.Asset(filepath.Join(root, "notes.txt"))
	assert.False(t, ok)

	res, err := am.LoadAsset("everything", metadata.ResourceTypeShader)
	require.NoError(t, err)
	src := res.Data.(*metadata.ShaderSource)
	assert.Equal(t, "vert", src.Vertex)
	assert.Equal(t, "frag", src.Fragment)

	res, err = am.LoadAsset("tri.obj", metadata.ResourceTypeMesh)
	require.NoError(t, err)
	g := res.Data.(*metadata.Geometry)
	assert.Equal(t, 3, g.VertexCount())
	require.NoError(t, am.UnloadAsset(res))

	cfg := filepath.Join(root, "rods.json")
	writeFile(t, cfg, `[{"angle": 0, "radius": 10, "height": 5}]`)
	res, err = am.LoadAsset(cfg, metadata.ResourceTypeConfig)
	require.NoError(t, err)
	positions := res.Data.([]math.Vec3)
	assert.True(t, positions[0].Compare(math.NewVec3(1, 0, 0.5), 1e-5))

	_, err = am.LoadAsset("x", metadata.ResourceTypeNone)
	assert.Error(t, err)
}

func TestAssetManagerWatch(t *testing.T) {
	root := setupAssets(t)
	am, err := NewAssetManager()
	require.NoError(t, err)
	require.NoError(t, am.Initialize(root, true))
	defer am.Shutdown()

	writeFile(t, filepath.Join(root, SHADERS_DIR, "everything.f.glsl"), "frag2")

	deadline := time.After(5 * time.Second)
	for {
		select {
		case change := <-am.Changes():
			if change.Type != metadata.ResourceTypeShader {
				continue
			}
			assert.Equal(t, "everything", change.Name)
			return
		case <-deadline:
			t.Fatal("no change notification")
		}
	}
}

func TestAssetManagerShutdownTwice(t *testing.T) {
	am, err := NewAssetManager()
	require.NoError(t, err)
	require.NoError(t, am.Initialize(t.TempDir(), true))
	require.NoError(t, am.Shutdown())
	require.NoError(t, am.Shutdown())
}
