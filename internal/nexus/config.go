// Package nexus loads configuration structs from the environment and an optional
// config file, then validates them.
package nexus

import (
	"flag"
	"fmt"
	"os"
	"reflect"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

// ConfigError carries a stable code alongside the cause.
type ConfigError struct {
	Code    string
	Message string
	Cause   error
}

func (e ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e ConfigError) Unwrap() error {
	return e.Cause
}

const (
	ErrCodeInvalidType  = "CONFIG_INVALID_TYPE"
	ErrCodeFileNotFound = "CONFIG_FILE_NOT_FOUND"
	ErrCodeValidation   = "CONFIG_VALIDATION_FAILED"
	ErrCodeEnvironment  = "CONFIG_ENV_READ_FAILED"
	ErrCodeMerge        = "CONFIG_MERGE_FAILED"
)

// Validatable is implemented by configs with cross-field rules that struct tags
// cannot express.
type Validatable interface {
	Validate() error
}

type LoaderOptions struct {
	DefaultFileName string
	FileFlag        string
	FileName        string
	OnlyEnvironment bool
}

type Loader struct {
	options  LoaderOptions
	validate *validator.Validate
}

type LoaderOption func(*LoaderOptions)

func WithFileName(fileName string) LoaderOption {
	return func(o *LoaderOptions) {
		o.FileName = fileName
		o.FileFlag = ""
	}
}

func WithOnlyEnvironment() LoaderOption {
	return func(o *LoaderOptions) {
		o.OnlyEnvironment = true
		o.FileFlag = ""
		o.FileName = ""
	}
}

func NewLoader(opts ...LoaderOption) *Loader {
	options := LoaderOptions{
		DefaultFileName: ".env",
		FileFlag:        "config",
	}
	for _, opt := range opts {
		opt(&options)
	}
	return &Loader{options: options, validate: validator.New()}
}

// Load fills cfg (a pointer to struct). Environment variables win over file values.
func (l *Loader) Load(cfg interface{}) error {
	if v := reflect.ValueOf(cfg); v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return &ConfigError{
			Code:    ErrCodeInvalidType,
			Message: fmt.Sprintf("configuration must be a pointer to struct, got %T", cfg),
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return &ConfigError{Code: ErrCodeEnvironment, Message: "failed to read environment variables", Cause: err}
	}

	if !l.options.OnlyEnvironment {
		if fileName := l.resolveFileName(); fileName != "" {
			if err := l.mergeFile(cfg, fileName); err != nil {
				return err
			}
		}
	}

	if err := l.validate.Struct(cfg); err != nil {
		return &ConfigError{Code: ErrCodeValidation, Message: "configuration validation failed", Cause: err}
	}
	if v, ok := cfg.(Validatable); ok {
		if err := v.Validate(); err != nil {
			return &ConfigError{Code: ErrCodeValidation, Message: "configuration validation failed", Cause: err}
		}
	}
	return nil
}

// mergeFile reads the file into a fresh copy. cleanenv applies env overrides to
// that copy too, so the merge keeps env precedence.
func (l *Loader) mergeFile(cfg interface{}, fileName string) error {
	fileCfg := reflect.New(reflect.ValueOf(cfg).Elem().Type()).Interface()
	if err := cleanenv.ReadConfig(fileName, fileCfg); err != nil {
		return &ConfigError{Code: ErrCodeFileNotFound, Message: "failed to read configuration file " + fileName, Cause: err}
	}
	if err := mergo.Merge(cfg, fileCfg, mergo.WithOverride); err != nil {
		return &ConfigError{Code: ErrCodeMerge, Message: "failed to merge configuration sources", Cause: err}
	}
	return nil
}

func (l *Loader) resolveFileName() string {
	if l.options.FileName != "" {
		return l.options.FileName
	}
	if l.options.FileFlag == "" {
		return ""
	}

	var fileName string
	if f := flag.Lookup(l.options.FileFlag); f != nil {
		fileName = f.Value.String()
	}
	if fileName == "" && l.options.DefaultFileName != "" {
		if _, err := os.Stat(l.options.DefaultFileName); err == nil {
			fileName = l.options.DefaultFileName
		}
	}
	return fileName
}
