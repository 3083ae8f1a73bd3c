package core

import (
	"errors"
)

var (
	ErrPlatformInit      = errors.New("platform layer failed to initialize")
	ErrPlatformRuntime   = errors.New("platform layer reported an error")
	ErrWindowCreate      = errors.New("window creation failed")
	ErrContextVersion    = errors.New("graphics context version is too old")
	ErrShaderCompile     = errors.New("shader compilation failed")
	ErrShaderLink        = errors.New("shader program link failed")
	ErrShaderNotFound    = errors.New("shader not found")
	ErrUniformMissing    = errors.New("required uniform not present in program")
	ErrUniformUndeclared = errors.New("uniform is not part of the program contract")
	ErrMaterialNotFound  = errors.New("no material entry for tag")
	ErrInvalidMaterial   = errors.New("invalid material definition")
	ErrUnknownTag        = errors.New("unknown object or material tag")
	ErrGeometryNotFound  = errors.New("no buffer set for shape")
	ErrTextureLoad       = errors.New("texture could not be loaded")
	ErrAssetNotFound     = errors.New("asset not found")
	ErrNotInitialized    = errors.New("subsystem not initialized")
	ErrUnknown           = errors.New("unknown")
)

const (
	ExitOK            = 0
	ExitInitFailure   = 1
	ExitPlatformError = 2
)

// ExitCode maps an error returned by the engine to a process exit code.
// Windowing errors raised while the loop runs map to ExitPlatformError,
// everything else that reaches main is an initialization failure.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrPlatformRuntime):
		return ExitPlatformError
	}
	return ExitInitFailure
}
