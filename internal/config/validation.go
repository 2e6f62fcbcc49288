package config

import (
	"fmt"
	"strings"

	"github.com/conneroisu/blockcraft/internal/errors"
	"github.com/conneroisu/blockcraft/internal/validation"
)

// ValidationError is one problem found in a configuration.
type ValidationError struct {
	Field       string
	Value       any
	Message     string
	Suggestions []string
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", ve.Field, ve.Message)
}

// ValidationResult holds the result of configuration validation.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

func (vr *ValidationResult) HasWarnings() bool {
	return len(vr.Warnings) > 0
}

// String returns a formatted list of every issue.
func (vr *ValidationResult) String() string {
	var b strings.Builder

	write := func(title string, issues []ValidationError) {
		if len(issues) == 0 {
			return
		}
		b.WriteString(title + ":\n")
		for _, issue := range issues {
			fmt.Fprintf(&b, "  • %s: %s\n", issue.Field, issue.Message)
			for _, s := range issue.Suggestions {
				fmt.Fprintf(&b, "    - %s\n", s)
			}
		}
	}
	write("Validation Errors", vr.Errors)
	write("Validation Warnings", vr.Warnings)

	return b.String()
}

// Validate returns a config error listing every field that is out of range.
func (c *Config) Validate() error {
	result := ValidateWithDetails(c)
	if !result.HasErrors() {
		return nil
	}

	fields := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		fields = append(fields, e.Field)
	}
	return errors.Config(errors.CodeConfigInvalid, "invalid configuration: "+result.Errors[0].Message, nil).
		WithContext("fields", strings.Join(fields, ","))
}

// ValidateWithDetails validates c and keeps warnings alongside errors.
func ValidateWithDetails(c *Config) *ValidationResult {
	result := &ValidationResult{}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "server.port",
			Value:   c.Server.Port,
			Message: fmt.Sprintf("port %d is not in valid range 0-65535", c.Server.Port),
			Suggestions: []string{
				"Common development ports: 3000, 8080, 8000",
				"Port 0 lets the system assign a free port",
			},
		})
	} else if c.Server.Port > 0 && c.Server.Port < 1024 {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "server.port",
			Value:   c.Server.Port,
			Message: "port below 1024 requires elevated privileges",
		})
	}

	if strings.ContainsAny(c.Server.Host, ";&|$`()<>\"'\\ ") {
		result.Errors = append(result.Errors, ValidationError{
			Field:       "server.host",
			Value:       c.Server.Host,
			Message:     "host contains invalid characters",
			Suggestions: []string{"Use 'localhost' or '0.0.0.0'"},
		})
	}

	for _, origin := range c.Server.AllowedOrigins {
		if err := validation.ValidateOrigin(origin); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:       "server.allowed_origins",
				Value:       origin,
				Message:     err.Error(),
				Suggestions: []string{"Use scheme://host[:port], e.g. http://localhost:3000"},
			})
		}
	}

	switch c.Server.Environment {
	case "development", "production", "testing":
	default:
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "server.environment",
			Value:   c.Server.Environment,
			Message: "unknown environment type",
		})
	}

	if c.Server.RateLimit.Enabled && (c.Server.RateLimit.RequestsPerMinute <= 0 || c.Server.RateLimit.Burst <= 0) {
		result.Errors = append(result.Errors, ValidationError{
			Field:       "server.rate_limit",
			Value:       c.Server.RateLimit,
			Message:     "requests_per_minute and burst must be positive when rate limiting is enabled",
			Suggestions: []string{"Set server.rate_limit.enabled to false to disable limiting"},
		})
	}

	if c.Deploy.SuccessRate < 0 || c.Deploy.SuccessRate > 1 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "deploy.success_rate",
			Value:   c.Deploy.SuccessRate,
			Message: fmt.Sprintf("success rate %g is not in range 0-1", c.Deploy.SuccessRate),
		})
	}
	if c.Deploy.TimeScale < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "deploy.time_scale",
			Value:   c.Deploy.TimeScale,
			Message: "time scale must not be negative",
		})
	}

	switch c.Assistant.History.Backend {
	case HistoryMemory:
	case HistoryRedis:
		if c.Assistant.History.RedisAddr == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "assistant.history.redis_addr",
				Message: "redis history requires an address",
			})
		}
	default:
		result.Errors = append(result.Errors, ValidationError{
			Field:       "assistant.history.backend",
			Value:       c.Assistant.History.Backend,
			Message:     fmt.Sprintf("unknown history backend %q", c.Assistant.History.Backend),
			Suggestions: []string{"Use 'memory' or 'redis'"},
		})
	}

	if err := validation.ValidateURL(c.Assistant.BaseURL); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "assistant.base_url",
			Value:   c.Assistant.BaseURL,
			Message: err.Error(),
		})
	}
	if c.Assistant.Timeout <= 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "assistant.timeout",
			Value:   c.Assistant.Timeout,
			Message: "timeout must be positive",
		})
	}
	if c.Assistant.HistoryWindow < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "assistant.history_window",
			Value:   c.Assistant.HistoryWindow,
			Message: "history window must not be negative",
		})
	}
	if c.Assistant.Upload.MaxBytes < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "assistant.upload.max_bytes",
			Value:   c.Assistant.Upload.MaxBytes,
			Message: "upload limit must not be negative",
		})
	}
	if c.Assistant.APIKey == "" {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:       "assistant.api_key",
			Message:     "no API key; assistant endpoints will be unavailable",
			Suggestions: []string{"Set GEMINI_API_KEY or BLOCKCRAFT_ASSISTANT_API_KEY"},
		})
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		result.Errors = append(result.Errors, ValidationError{
			Field:   "log.format",
			Value:   c.Log.Format,
			Message: fmt.Sprintf("unknown log format %q", c.Log.Format),
		})
	}

	return result
}
