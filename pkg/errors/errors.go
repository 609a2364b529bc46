package errors

import "fmt"

// Common error types.
var (
	// Config errors.
	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath = fmt.Errorf("invalid config file path")
	ErrConfigParse       = fmt.Errorf("failed to parse config")
	ErrConfigValidation  = fmt.Errorf("invalid configuration")
	ErrConfigEncode      = fmt.Errorf("failed to encode config")
	ErrConfigDirectory   = fmt.Errorf("failed to create config directory")
	ErrConfigFileCreate  = fmt.Errorf("failed to create config file")
	ErrConfigFileExists  = fmt.Errorf("config file already exists")
	ErrUnknownConfigKey  = fmt.Errorf("unknown configuration key")

	// Cache errors.
	ErrCacheDirectory = fmt.Errorf("invalid cache directory")
	ErrCacheClean     = fmt.Errorf("failed to clean cache")

	// Feed errors.
	ErrFeedNotFound     = fmt.Errorf("feed not found")
	ErrFeedURLInvalid   = fmt.Errorf("invalid feed URL")
	ErrFeedIndexInvalid = fmt.Errorf("invalid feed index")
	ErrPackageNotFound  = fmt.Errorf("package not found")

	// Solution errors.
	ErrSolutionManifest = fmt.Errorf("invalid solution manifest")
	ErrProjectNotFound  = fmt.Errorf("project not found")
	ErrInvalidPath      = fmt.Errorf("invalid path")

	// Project system errors.
	ErrPropertyNotFound = fmt.Errorf("project property not found")
	ErrProjectState     = fmt.Errorf("invalid project state file")

	// Action errors.
	ErrUnknownAction     = fmt.Errorf("unknown action")
	ErrInvalidVersion    = fmt.Errorf("invalid version")
	ErrVersionNotOffered = fmt.Errorf("version is not in the candidate list")
	ErrActionDisabled    = fmt.Errorf("no project is selected for the action")
	ErrLicenseDeclined   = fmt.Errorf("license was not accepted")
	ErrChecksumMismatch  = fmt.Errorf("package checksum mismatch")
	ErrNotConfigured     = fmt.Errorf("executor is not configured")

	// Hook errors.
	ErrHookExecution = fmt.Errorf("error executing hook")
	ErrHookScript    = fmt.Errorf("hook script error")

	// Transport errors.
	ErrUnexpectedStatus = fmt.Errorf("unexpected status code")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
