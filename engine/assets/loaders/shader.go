package loaders

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spaghettifunk/lumina/engine/renderer/metadata"
)

type ShaderLoader struct{}

// Load reads "<path>.v.glsl" and "<path>.f.glsl".
func (sl *ShaderLoader) Load(path string, name string) (*metadata.Resource, error) {
	src, err := LoadShaderSources(filepath.Dir(path), filepath.Base(path))
	if err != nil {
		return nil, err
	}
	return &metadata.Resource{
		Name:     name,
		FullPath: path,
		Type:     metadata.ResourceTypeShader,
		DataSize: uint64(len(src.Vertex) + len(src.Fragment)),
		Data:     src,
	}, nil
}

func (sl *ShaderLoader) Unload(*metadata.Resource) error {
	return nil
}

// LoadShaderSources reads the vertex and fragment stages of program name from dir.
func LoadShaderSources(dir, name string) (*metadata.ShaderSource, error) {
	read := func(stage metadata.ShaderStage) (string, error) {
		p := filepath.Join(dir, name+stage.FileSuffix())
		data, err := os.ReadFile(p)
		if err != nil {
			return "", fmt.Errorf("%s shader: %w", stage, err)
		}
		return string(data), nil
	}
	vert, err := read(metadata.SHADER_STAGE_VERTEX)
	if err != nil {
		return nil, err
	}
	frag, err := read(metadata.SHADER_STAGE_FRAGMENT)
	if err != nil {
		return nil, err
	}
	return &metadata.ShaderSource{Name: name, Vertex: vert, Fragment: frag}, nil
}
