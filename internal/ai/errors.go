package ai

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType classifies a provider failure.
type ErrorType string

const (
	ErrTypeProvider       ErrorType = "provider"
	ErrTypeConfiguration  ErrorType = "configuration"
	ErrTypeAuthentication ErrorType = "authentication"
	ErrTypeRateLimit      ErrorType = "rate_limit"
	ErrTypeNetwork        ErrorType = "network"
	ErrTypeTimeout        ErrorType = "timeout"
	ErrTypeValidation     ErrorType = "validation"
	ErrTypeRegistration   ErrorType = "registration"
	ErrTypeNotFound       ErrorType = "not_found"
	ErrTypeEmptyResponse  ErrorType = "empty_response"
	ErrTypeInternal       ErrorType = "internal"
)

// ProviderError is returned by providers and the registry. errors.Is
// matches on Type alone, so a bare &ProviderError{Type: ...} works as a
// sentinel.
type ProviderError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Provider   string    `json:"provider,omitempty"`
	StatusCode int       `json:"status_code,omitempty"`
	Cause      error     `json:"-"`
}

func (e *ProviderError) Error() string {
	parts := make([]string, 0, 5)
	if e.Provider != "" {
		parts = append(parts, "provider="+e.Provider)
	}
	parts = append(parts, "type="+string(e.Type))
	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}
	parts = append(parts, e.Message)
	if e.Cause != nil {
		parts = append(parts, "cause="+e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *ProviderError) Unwrap() error { return e.Cause }

func (e *ProviderError) Is(target error) bool {
	pe, ok := target.(*ProviderError)
	return ok && e.Type == pe.Type
}

// Transient reports whether the same request might succeed later. The
// storefront never retries; this only feeds diagnostics.
func (e *ProviderError) Transient() bool {
	switch e.Type {
	case ErrTypeRateLimit, ErrTypeTimeout, ErrTypeNetwork:
		return true
	}
	return false
}

// ValidationError reports a malformed request.
type ValidationError struct {
	Field   string `json:"field"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// ConfigurationError reports an unusable provider setting.
type ConfigurationError struct {
	Provider string `json:"provider"`
	Field    string `json:"field"`
	Message  string `json:"message"`
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error for provider '%s', field '%s': %s", e.Provider, e.Field, e.Message)
}

func NewProviderError(errType ErrorType, message, provider string) *ProviderError {
	return &ProviderError{Type: errType, Message: message, Provider: provider}
}

func NewProviderErrorWithCause(errType ErrorType, message, provider string, cause error) *ProviderError {
	return &ProviderError{Type: errType, Message: message, Provider: provider, Cause: cause}
}

func NewValidationError(field, value, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

func NewConfigurationError(provider, field, message string) *ConfigurationError {
	return &ConfigurationError{Provider: provider, Field: field, Message: message}
}

func providerErrorOf(err error, t ErrorType) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Type == t
}

// IsTransient reports whether err wraps a transient ProviderError.
func IsTransient(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Transient()
}

func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce) || providerErrorOf(err, ErrTypeConfiguration)
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) || providerErrorOf(err, ErrTypeValidation)
}

// IsAuthenticationError reports a rejected credential.
func IsAuthenticationError(err error) bool {
	return providerErrorOf(err, ErrTypeAuthentication)
}

// IsEmptyResponse reports that the model answered without text.
func IsEmptyResponse(err error) bool {
	return providerErrorOf(err, ErrTypeEmptyResponse)
}
