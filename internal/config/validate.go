package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidFormat indicates an unsupported output format
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrEmptyOutput indicates a missing output base name
	ErrEmptyOutput = errors.New("empty output name")

	// ErrEmptyProjectType indicates hierarchy extraction without a project type
	ErrEmptyProjectType = errors.New("empty project type")

	// ErrInvalidDebounce indicates a negative watch debounce
	ErrInvalidDebounce = errors.New("invalid debounce")

	// ErrInvalidExtension indicates an exclude extension without a leading dot
	ErrInvalidExtension = errors.New("invalid exclude extension")
)

// Validate checks that the configuration is valid and complete. Every
// problem found is reported in the returned error.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateOutput(cfg); err != nil {
		errs = append(errs, err)
	}

	for _, ext := range cfg.ExcludeExtensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Errorf("%w: %q must start with '.'", ErrInvalidExtension, ext))
		}
	}

	if err := validateHierarchy(&cfg.Hierarchy); err != nil {
		errs = append(errs, err)
	}

	if cfg.Watch.DebounceMs < 0 {
		errs = append(errs, fmt.Errorf("%w: debounce_ms cannot be negative, got %d", ErrInvalidDebounce, cfg.Watch.DebounceMs))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateOutput(cfg *Config) error {
	var errs []error

	if strings.TrimSpace(cfg.Output) == "" {
		errs = append(errs, fmt.Errorf("%w: output is required", ErrEmptyOutput))
	}

	valid := make(map[string]bool, len(SupportedFormats))
	for _, f := range SupportedFormats {
		valid[f] = true
	}
	for _, f := range cfg.OutputFormats {
		if !valid[f] {
			errs = append(errs, fmt.Errorf("%w: %s (valid: %s)", ErrInvalidFormat, f, strings.Join(SupportedFormats, ", ")))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}
	return nil
}

func validateHierarchy(cfg *HierarchyConfig) error {
	// Unknown project types are only detected when the registry is built,
	// since plugins may add types.
	if cfg.Enable && strings.TrimSpace(cfg.ProjectType) == "" {
		return fmt.Errorf("%w: project_type is required when hierarchy is enabled", ErrEmptyProjectType)
	}
	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
