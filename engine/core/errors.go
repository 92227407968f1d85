package core

import (
	"errors"
)

var (
	ErrInvalidConfig   = errors.New("invalid emitter configuration")
	ErrInvalidMesh     = errors.New("invalid mesh data")
	ErrTooManyEmitters = errors.New("too many emitters: wire ids are a single byte")
	ErrNotUploaded     = errors.New("renderable drawn before upload")
	ErrShaderCompile   = errors.New("shader compilation failed")
	ErrShaderLink      = errors.New("shader program link failed")
)
