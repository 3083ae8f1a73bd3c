package loaders

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/stilllife/engine/core"
	"github.com/spaghettifunk/stilllife/engine/math"
	"github.com/spaghettifunk/stilllife/engine/renderer/metadata"
)

type MaterialLoader struct{}

/** @brief On-disk shape of one [[material]] table. */
type materialEntry struct {
	Tag      string     `toml:"tag"`
	Ambient  [4]float32 `toml:"Oa"`
	Diffuse  [4]float32 `toml:"Od"`
	Specular [4]float32 `toml:"Os"`
	Ka       float32    `toml:"ka"`
	Kd       float32    `toml:"kd"`
	Ks       float32    `toml:"ks"`
	Exponent float32    `toml:"specular_exponent"`
}

type lightEntry struct {
	Colour   [4]float32 `toml:"light_color"`
	Position [3]float32 `toml:"light_position"`
	Ambient  [4]float32 `toml:"light_ambient"`
}

type materialFile struct {
	Light     *lightEntry     `toml:"light"`
	Materials []materialEntry `toml:"material"`
}

func (ml *MaterialLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lib, err := DecodeMaterialLibrary(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &metadata.Resource{
		Name:     "material",
		FullPath: path,
		DataSize: uint64(len(data)),
		Data:     lib,
	}, nil
}

func (ml *MaterialLoader) Unload(resource *metadata.Resource) error {
	resource.Data = nil
	return nil
}

/**
 * @brief Parses and validates a material library. A missing [light] table,
 * unknown or duplicate tags, colours outside [0, 1] and negative scalars
 * are rejected.
 */
func DecodeMaterialLibrary(r io.Reader) (*metadata.MaterialLibrary, error) {
	var file materialFile
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %s", core.ErrInvalidMaterial, err)
	}
	if file.Light == nil {
		return nil, fmt.Errorf("the [light] table is missing: %w", core.ErrInvalidMaterial)
	}

	lib := &metadata.MaterialLibrary{
		Light: metadata.LightSource{
			Colour:   vec4(file.Light.Colour),
			Position: math.NewVec3(file.Light.Position[0], file.Light.Position[1], file.Light.Position[2]),
			Ambient:  vec4(file.Light.Ambient),
		},
		Materials: make(map[metadata.Tag]metadata.MaterialProfile, len(file.Materials)),
	}
	if !lib.Light.Colour.IsColour() || !lib.Light.Ambient.IsColour() {
		return nil, fmt.Errorf("light colours must be between 0.0 and 1.0: %w", core.ErrInvalidMaterial)
	}

	for _, entry := range file.Materials {
		tag, err := metadata.ParseTag(entry.Tag)
		if err != nil {
			return nil, err
		}
		if _, dup := lib.Materials[tag]; dup {
			return nil, fmt.Errorf("tag %s defined twice: %w", tag, core.ErrInvalidMaterial)
		}
		profile := metadata.MaterialProfile{
			Ambient:  vec4(entry.Ambient),
			Diffuse:  vec4(entry.Diffuse),
			Specular: vec4(entry.Specular),
			Ka:       entry.Ka,
			Kd:       entry.Kd,
			Ks:       entry.Ks,
			Exponent: entry.Exponent,
		}
		if err := profile.Validate(); err != nil {
			return nil, fmt.Errorf("tag %s: %w", tag, err)
		}
		lib.Materials[tag] = profile
	}
	return lib, nil
}

// EncodeMaterialLibrary writes lib with entries ordered by tag code.
func EncodeMaterialLibrary(w io.Writer, lib *metadata.MaterialLibrary) error {
	tags := make([]metadata.Tag, 0, len(lib.Materials))
	for tag := range lib.Materials {
		tags = append(tags, tag)
	}
	slices.SortFunc(tags, func(a, b metadata.Tag) int {
		return a.Code() - b.Code()
	})

	file := materialFile{
		Light: &lightEntry{
			Colour:   lib.Light.Colour.Array(),
			Position: [3]float32{lib.Light.Position.X, lib.Light.Position.Y, lib.Light.Position.Z},
			Ambient:  lib.Light.Ambient.Array(),
		},
		Materials: make([]materialEntry, 0, len(tags)),
	}
	for _, tag := range tags {
		p := lib.Materials[tag]
		file.Materials = append(file.Materials, materialEntry{
			Tag:      tag.String(),
			Ambient:  p.Ambient.Array(),
			Diffuse:  p.Diffuse.Array(),
			Specular: p.Specular.Array(),
			Ka:       p.Ka,
			Kd:       p.Kd,
			Ks:       p.Ks,
			Exponent: p.Exponent,
		})
	}

	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(file)
}

func vec4(a [4]float32) math.Vec4 {
	return math.NewVec4(a[0], a[1], a[2], a[3])
}
