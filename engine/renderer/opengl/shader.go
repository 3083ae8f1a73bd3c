package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/spaghettifunk/stilllife/engine/core"
	"github.com/spaghettifunk/stilllife/engine/math"
	"github.com/spaghettifunk/stilllife/engine/renderer/metadata"
)

var stageTypes = map[metadata.ShaderStage]uint32{
	metadata.ShaderStageVertex:   gl.VERTEX_SHADER,
	metadata.ShaderStageFragment: gl.FRAGMENT_SHADER,
}

func (r *OpenGLRenderer) ShaderCreate(shader *metadata.Shader, config *metadata.ShaderConfig, sources map[metadata.ShaderStage]string) error {
	handles := make([]uint32, 0, len(config.Stages))
	defer func() {
		for _, h := range handles {
			gl.DeleteShader(h)
		}
	}()

	for _, stage := range config.Stages {
		src, ok := sources[stage.Stage]
		if !ok {
			return fmt.Errorf("shader `%s` has no %s source: %w", config.Name, stage.Stage, core.ErrShaderCompile)
		}
		h, err := compileShader(src, stageTypes[stage.Stage])
		if err != nil {
			core.LogError("shader `%s` (%s): %s", config.Name, stage.Filename, err)
			return fmt.Errorf("%s stage of `%s`: %w", stage.Stage, config.Name, err)
		}
		handles = append(handles, h)
	}

	program := gl.CreateProgram()
	for _, h := range handles {
		gl.AttachShader(program, h)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		core.LogError("shader `%s` failed to link: %s", config.Name, log)
		return fmt.Errorf("`%s`: %w: %s", config.Name, core.ErrShaderLink, strings.TrimRight(log, "\x00"))
	}
	for _, h := range handles {
		gl.DetachShader(program, h)
	}

	for _, uc := range config.Uniforms {
		location := gl.GetUniformLocation(program, gl.Str(uc.Name+"\x00"))
		u := &metadata.ShaderUniform{
			Name:     uc.Name,
			Type:     uc.Type,
			Required: uc.Required,
			Location: location,
			Presence: metadata.UniformPresent,
		}
		if location < 0 {
			u.Location = -1
			u.Presence = metadata.UniformAbsent
		}
		shader.Uniforms[uc.Name] = u
	}

	shader.ID = program
	return nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%w: %s", core.ErrShaderCompile, strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func (r *OpenGLRenderer) ShaderDestroy(shader *metadata.Shader) error {
	gl.DeleteProgram(shader.ID)
	shader.ID = 0
	return nil
}

func (r *OpenGLRenderer) ShaderUse(shader *metadata.Shader) error {
	gl.UseProgram(shader.ID)
	return nil
}

// SetUniform expects the program to be in use.
func (r *OpenGLRenderer) SetUniform(shader *metadata.Shader, uniform *metadata.ShaderUniform, value interface{}) error {
	switch v := value.(type) {
	case float32:
		gl.Uniform1f(uniform.Location, v)
	case int32:
		gl.Uniform1i(uniform.Location, v)
	case math.Vec3:
		gl.Uniform3f(uniform.Location, v.X, v.Y, v.Z)
	case math.Vec4:
		gl.Uniform4f(uniform.Location, v.X, v.Y, v.Z, v.W)
	case math.Mat4:
		gl.UniformMatrix4fv(uniform.Location, 1, false, &v.Data[0])
	default:
		return fmt.Errorf("uniform `%s` of `%s`: unsupported value type %T", uniform.Name, shader.Name, value)
	}
	return nil
}
