package metadata

import (
	"fmt"

	"github.com/spaghettifunk/stilllife/engine/core"
	"github.com/spaghettifunk/stilllife/engine/math"
)

/**
 * @brief The reflectance of a surface under the Phong model: ambient,
 * diffuse and specular colours, one coefficient per term and the
 * specular exponent.
 */
type MaterialProfile struct {
	/** @brief Ambient colour, uniform `Oa`. */
	Ambient math.Vec4
	/** @brief Diffuse colour, uniform `Od`. */
	Diffuse math.Vec4
	/** @brief Specular colour, uniform `Os`. */
	Specular math.Vec4
	/** @brief Ambient coefficient, uniform `ka`. */
	Ka float32
	/** @brief Diffuse coefficient, uniform `kd`. */
	Kd float32
	/** @brief Specular coefficient, uniform `ks`. */
	Ks float32
	/** @brief Specular exponent, uniform `specular_exponent`. */
	Exponent float32
}

// Validate checks colours are in [0, 1] and scalars are non-negative.
func (p MaterialProfile) Validate() error {
	if !p.Ambient.IsColour() || !p.Diffuse.IsColour() || !p.Specular.IsColour() {
		return fmt.Errorf("colour channels must be between 0.0 and 1.0: %w", core.ErrInvalidMaterial)
	}
	if p.Ka < 0 || p.Kd < 0 || p.Ks < 0 {
		return fmt.Errorf("coefficients must be non-negative: %w", core.ErrInvalidMaterial)
	}
	if p.Exponent < 0 {
		return fmt.Errorf("specular exponent must be non-negative: %w", core.ErrInvalidMaterial)
	}
	return nil
}

/**
 * @brief The single point light of the scene. It is the same for every
 * draw and every program.
 */
type LightSource struct {
	/** @brief uniform `light_color` */
	Colour math.Vec4
	/** @brief uniform `light_position` */
	Position math.Vec3
	/** @brief uniform `light_ambient` */
	Ambient math.Vec4
}

// DefaultLight is the light every program is lit with.
func DefaultLight() LightSource {
	return LightSource{
		Colour:   math.NewVec4(1.0, 1.0, 1.0, 1.0),
		Position: math.NewVec3(3.0, 9.0, 2.0),
		Ambient:  math.NewVec4(0.5, 0.5, 0.5, 1.0),
	}
}

/** @brief The coefficients used for texture mapped surfaces. Colours come from the sampler. */
type TextureProfile struct {
	Ka       float32
	Kd       float32
	Ks       float32
	Exponent float32
}

// DefaultTextureProfile is applied to every texture mapped draw.
func DefaultTextureProfile() TextureProfile {
	return TextureProfile{Ka: 0.7, Kd: 0.7, Ks: 1.0, Exponent: 40.0}
}
