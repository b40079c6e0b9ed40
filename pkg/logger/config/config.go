package config

import (
	"github.com/go-playground/validator/v10"
)

// zapcore levels
const (
	DEBUG_LEVEL = -1
	INFO_LEVEL  = 0
	WARN_LEVEL  = 1
	ERROR_LEVEL = 2
)

type Configuration struct {
	Level      int    `validate:"min=-1,max=5"`
	TimeFormat string `validate:"required"`
}

func (c Configuration) Validate() error {
	return validator.New().Struct(c)
}
