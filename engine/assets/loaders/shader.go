package loaders

import (
	"os"
	"path/filepath"

	"github.com/spaghettifunk/stilllife/engine/renderer/metadata"
)

type ShaderLoader struct{}

// Load reads a GLSL source file. Resource.Data is the source as a string.
func (sl *ShaderLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &metadata.Resource{
		Name:     filepath.Base(path),
		FullPath: path,
		DataSize: uint64(len(data)),
		Data:     string(data),
	}, nil
}

func (sl *ShaderLoader) Unload(resource *metadata.Resource) error {
	resource.Data = nil
	return nil
}
