package metadata

import (
	"fmt"

	"github.com/spaghettifunk/stilllife/engine/core"
)

/** @brief The two namespaces a Tag can belong to. */
type TagKind uint8

const (
	TagKindShape TagKind = iota
	TagKindMaterial
)

/** @brief The canonical meshes the geometry system knows how to build. */
type ShapeKind uint8

const (
	ShapeQuad ShapeKind = iota
	ShapeTeapot
	ShapeSphere
	ShapeCone
	ShapeCylinder
	ShapeCube

	shapeKindCount
)

/** @brief Named surface materials. */
type MaterialKind uint8

const (
	MaterialApple MaterialKind = iota
	MaterialMuffin
	MaterialFlower
	MaterialVase
	MaterialCandle
	MaterialWood
	MaterialCup
	MaterialYellowFlower
	MaterialMuffinCup
	MaterialLeaf

	materialKindCount
)

// materialCodeOffset is the first legacy code of the material namespace.
const materialCodeOffset = int(shapeKindCount)

var shapeNames = [shapeKindCount]string{
	"OBJ_QUAD", "OBJ_TEAPOT", "OBJ_SPHERE", "OBJ_CONE", "OBJ_CYLINDER", "OBJ_CUBE",
}

var materialNames = [materialKindCount]string{
	"MATL_APPLE", "MATL_MUFFIN", "MATL_FLOWER", "MATL_VASE", "MATL_CANDLE",
	"MATL_WOOD", "MATL_CUP", "MATL_YELLOWFLOWER", "MATL_MUFFINCUP", "MATL_LEAF",
}

/**
 * @brief Selects a reflectance profile. A Tag is either a shape kind or a
 * material kind, never both; the zero value is the quad shape.
 */
type Tag struct {
	kind     TagKind
	shape    ShapeKind
	material MaterialKind
}

func ShapeTag(s ShapeKind) Tag {
	return Tag{kind: TagKindShape, shape: s}
}

func MaterialTag(m MaterialKind) Tag {
	return Tag{kind: TagKindMaterial, material: m}
}

func (t Tag) Kind() TagKind {
	return t.kind
}

// Shape returns the shape kind and true when t lives in the shape namespace.
func (t Tag) Shape() (ShapeKind, bool) {
	return t.shape, t.kind == TagKindShape
}

// Material returns the material kind and true when t lives in the material namespace.
func (t Tag) Material() (MaterialKind, bool) {
	return t.material, t.kind == TagKindMaterial
}

/**
 * @brief Returns the flat numeric code shared by both namespaces:
 * shapes use 0-5, materials 6-15.
 */
func (t Tag) Code() int {
	if t.kind == TagKindMaterial {
		return materialCodeOffset + int(t.material)
	}
	return int(t.shape)
}

func (t Tag) Valid() bool {
	if t.kind == TagKindMaterial {
		return t.material < materialKindCount
	}
	return t.kind == TagKindShape && t.shape < shapeKindCount
}

func (t Tag) String() string {
	if !t.Valid() {
		return fmt.Sprintf("TAG(%d)", t.Code())
	}
	if t.kind == TagKindMaterial {
		return materialNames[t.material]
	}
	return shapeNames[t.shape]
}

// TagFromCode is the inverse of Tag.Code.
func TagFromCode(code int) (Tag, error) {
	switch {
	case code >= 0 && code < materialCodeOffset:
		return ShapeTag(ShapeKind(code)), nil
	case code >= materialCodeOffset && code < materialCodeOffset+int(materialKindCount):
		return MaterialTag(MaterialKind(code - materialCodeOffset)), nil
	}
	return Tag{}, fmt.Errorf("code %d: %w", code, core.ErrUnknownTag)
}

// ParseTag accepts the names returned by Tag.String.
func ParseTag(name string) (Tag, error) {
	for i, n := range shapeNames {
		if n == name {
			return ShapeTag(ShapeKind(i)), nil
		}
	}
	for i, n := range materialNames {
		if n == name {
			return MaterialTag(MaterialKind(i)), nil
		}
	}
	return Tag{}, fmt.Errorf("name %q: %w", name, core.ErrUnknownTag)
}

// AllTags lists every tag ordered by code.
func AllTags() []Tag {
	tags := make([]Tag, 0, int(shapeKindCount)+int(materialKindCount))
	for s := ShapeKind(0); s < shapeKindCount; s++ {
		tags = append(tags, ShapeTag(s))
	}
	for m := MaterialKind(0); m < materialKindCount; m++ {
		tags = append(tags, MaterialTag(m))
	}
	return tags
}

func (s ShapeKind) String() string {
	return ShapeTag(s).String()
}

func (t Tag) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("code %d: %w", t.Code(), core.ErrUnknownTag)
	}
	return []byte(t.String()), nil
}

func (t *Tag) UnmarshalText(text []byte) error {
	parsed, err := ParseTag(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
