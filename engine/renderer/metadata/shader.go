package metadata

import (
	"fmt"

	"github.com/spaghettifunk/stilllife/engine/core"
)

/** @brief The names of the builtin programs. */
const (
	BUILTIN_SHADER_NAME_PHONG   string = "Shader.Builtin.Phong"
	BUILTIN_SHADER_NAME_TEXTURE string = "Shader.Builtin.Texture"
)

/** @brief Uniform names shared by the builtin programs. */
const (
	UniformModel      = "model"
	UniformView       = "view"
	UniformProjection = "projection"

	UniformAmbientColour  = "Oa"
	UniformDiffuseColour  = "Od"
	UniformSpecularColour = "Os"
	UniformKa             = "ka"
	UniformKd             = "kd"
	UniformKs             = "ks"
	UniformExponent       = "specular_exponent"

	UniformLightColour   = "light_color"
	UniformLightPosition = "light_position"
	UniformLightAmbient  = "light_ambient"

	UniformSampler = "happy_img"
)

/**
 * @brief Represents the current state of a given shader.
 */
type ShaderState int

const (
	/** @brief The shader has not yet gone through the creation process, and is unusable.*/
	SHADER_STATE_NOT_CREATED ShaderState = iota
	/** @brief The shader is linked and its uniforms resolved. It is ready for use.*/
	SHADER_STATE_INITIALIZED
	/** @brief The shader has been destroyed. */
	SHADER_STATE_DESTROYED
)

/** @brief Shader stages available in the system. */
type ShaderStage int

const (
	ShaderStageVertex ShaderStage = iota
	ShaderStageFragment
)

func (s ShaderStage) String() string {
	switch s {
	case ShaderStageVertex:
		return "vertex"
	case ShaderStageFragment:
		return "fragment"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

/** @brief Available uniform types. */
type ShaderUniformType uint

const (
	ShaderUniformTypeFloat32   ShaderUniformType = 0
	ShaderUniformTypeFloat32_3 ShaderUniformType = 2
	ShaderUniformTypeFloat32_4 ShaderUniformType = 3
	ShaderUniformTypeInt32     ShaderUniformType = 8
	ShaderUniformTypeMatrix4   ShaderUniformType = 10
	ShaderUniformTypeSampler   ShaderUniformType = 11
)

/**
 * @brief Whether a declared uniform was found in the linked program.
 * An absent optional uniform is expected (the compiler may strip unused
 * ones); an absent required uniform is a setup error.
 */
type UniformPresence int

const (
	UniformAbsent UniformPresence = iota
	UniformPresent
)

/** @brief Configuration for a uniform. */
type ShaderUniformConfig struct {
	Name     string
	Type     ShaderUniformType
	Required bool
}

/** @brief One source file of a program. */
type ShaderStageConfig struct {
	Stage    ShaderStage
	Filename string
}

/**
 * @brief Configuration for a shader: its stages and the uniform
 * contract its sources are expected to honour.
 */
type ShaderConfig struct {
	/** @brief The name of the shader to be created. */
	Name string
	/** @brief The collection of stages. */
	Stages []ShaderStageConfig
	/** @brief The collection of uniforms. */
	Uniforms []ShaderUniformConfig
}

/**
 * @brief A single declared uniform after link-time resolution.
 */
type ShaderUniform struct {
	Name     string
	Type     ShaderUniformType
	Required bool
	/** @brief The backend location, -1 when absent. */
	Location int32
	Presence UniformPresence
}

/**
 * @brief Represents a linked shader program on the frontend.
 */
type Shader struct {
	/** @brief The program identifier */
	ID uint32

	Name string

	/** @brief Declared uniforms keyed by name. */
	Uniforms map[string]*ShaderUniform

	/** @brief The internal State of the shader. */
	State ShaderState

	/** @brief Incremented every time the program is rebuilt. */
	Generation uint32

	/** @brief An opaque pointer to hold renderer API specific data. */
	InternalData interface{}
}

/**
 * @brief Looks up a declared uniform. A name outside the contract is a
 * programming error and is reported as ErrUniformUndeclared.
 */
func (s *Shader) Uniform(name string) (*ShaderUniform, error) {
	u, ok := s.Uniforms[name]
	if !ok {
		return nil, fmt.Errorf("uniform `%s` in shader `%s`: %w", name, s.Name, core.ErrUniformUndeclared)
	}
	return u, nil
}

/**
 * @brief Returns the declared uniforms that the program does not expose,
 * split into required and optional names, in declaration order.
 */
func (s *Shader) MissingUniforms(config *ShaderConfig) (required []string, optional []string) {
	for _, uc := range config.Uniforms {
		u, ok := s.Uniforms[uc.Name]
		if ok && u.Presence == UniformPresent {
			continue
		}
		if uc.Required {
			required = append(required, uc.Name)
		} else {
			optional = append(optional, uc.Name)
		}
	}
	return required, optional
}
