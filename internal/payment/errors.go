package payment

import "fmt"

// ValidationError reports client-caused problems with payment input.
// It is always detected before any gateway call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConfigurationError indicates the deployment is missing gateway
// credentials. Distinct from request validation so handlers can log the
// detail server-side while returning a generic message.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// AuthenticationError indicates the gateway rejected our API credentials
// (HTTP 401). Kept separate from GatewayError so callers can render an
// actionable message.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// GatewayError is a normalized rejection from the payment gateway. The
// message is extracted from whichever of the gateway's documented error
// shapes was present in the response body.
type GatewayError struct {
	Status  int
	Code    string
	Message string
}

func (e *GatewayError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}
