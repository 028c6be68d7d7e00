package feeders

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/golobby/cast"
)

// DefaultEnvPrefix is the prefix of the environment variables read by NewEnvFeeder.
const DefaultEnvPrefix = "EVENTHOOK"

var durationType = reflect.TypeOf(time.Duration(0))

// EnvFeeder sets struct fields tagged `env:"NAME"` from the environment
// variable PREFIX_NAME. Unset or empty variables leave the field untouched.
type EnvFeeder struct {
	Prefix string
}

// NewEnvFeeder creates an EnvFeeder reading EVENTHOOK_* variables.
func NewEnvFeeder() EnvFeeder {
	return EnvFeeder{Prefix: DefaultEnvPrefix}
}

// NewPrefixedEnvFeeder creates an EnvFeeder with a custom prefix.
func NewPrefixedEnvFeeder(prefix string) EnvFeeder {
	return EnvFeeder{Prefix: prefix}
}

// Feed reads environment variables and populates the provided structure
func (f EnvFeeder) Feed(structure interface{}) error {
	if f.Prefix == "" {
		return ErrEnvEmptyPrefix
	}

	inputType := reflect.TypeOf(structure)
	if inputType == nil || inputType.Kind() != reflect.Ptr || inputType.Elem().Kind() != reflect.Struct {
		return ErrEnvInvalidStructure
	}

	return f.processStructFields(reflect.ValueOf(structure).Elem(), strings.ToUpper(f.Prefix))
}

// processStructFields iterates through struct fields
func (f EnvFeeder) processStructFields(rv reflect.Value, prefix string) error {
	for i := 0; i < rv.NumField(); i++ {
		field := rv.Field(i)
		fieldType := rv.Type().Field(i)

		if err := f.processField(field, &fieldType, prefix); err != nil {
			return fmt.Errorf("error in field '%s': %w", fieldType.Name, err)
		}
	}
	return nil
}

// processField handles a single struct field
func (f EnvFeeder) processField(field reflect.Value, fieldType *reflect.StructField, prefix string) error {
	switch field.Kind() {
	case reflect.Struct:
		return f.processStructFields(field, prefix)
	case reflect.Pointer:
		if !field.IsZero() && field.Elem().Kind() == reflect.Struct {
			return f.processStructFields(field.Elem(), prefix)
		}
	default:
		if envTag, exists := fieldType.Tag.Lookup("env"); exists {
			return setFieldFromEnv(field, prefix+"_"+strings.ToUpper(envTag))
		}
	}
	return nil
}

// setFieldFromEnv sets a field value from an environment variable
func setFieldFromEnv(field reflect.Value, envName string) error {
	envValue := os.Getenv(envName)
	if envValue == "" {
		return nil
	}
	if !field.CanSet() {
		return ErrEnvFieldCannotBeSet
	}

	// Durations are int64 to cast, so they are parsed here.
	if field.Type() == durationType {
		d, err := time.ParseDuration(envValue)
		if err != nil {
			return fmt.Errorf("%w %s=%q to %v: %w", ErrEnvConversion, envName, envValue, field.Type(), err)
		}
		field.SetInt(int64(d))
		return nil
	}

	convertedValue, err := cast.FromType(envValue, field.Type())
	if err != nil {
		return fmt.Errorf("%w %s=%q to %v: %w", ErrEnvConversion, envName, envValue, field.Type(), err)
	}
	field.Set(reflect.ValueOf(convertedValue).Convert(field.Type()))
	return nil
}
