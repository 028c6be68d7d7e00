// Package feeders reads hook configuration from YAML files, TOML files and
// environment variables.
package feeders

import (
	"errors"
)

// Env feeder errors
var (
	ErrEnvInvalidStructure = errors.New("env: invalid structure")
	ErrEnvEmptyPrefix      = errors.New("env: prefix cannot be empty")
	ErrEnvFieldCannotBeSet = errors.New("env: field cannot be set")
	ErrEnvConversion       = errors.New("env: cannot convert value")
)

// File feeder errors
var (
	ErrYamlDecode = errors.New("yaml: cannot decode file")
	ErrTomlDecode = errors.New("toml: cannot decode file")
)
