package domain

// RegraNegocioError signals a violated business rule: a failed validation,
// a duplicate email, or an operation against a record that does not exist.
// The API layer maps it to a 400 response carrying the message.
type RegraNegocioError struct {
	Message string // Human readable reason, returned to the client
}

// Error implements the error interface
func (e *RegraNegocioError) Error() string { return e.Message }

// NewRegraNegocio builds a business rule error with the given message
func NewRegraNegocio(message string) error {
	return &RegraNegocioError{Message: message}
}

// ErroAutenticacao signals failed authentication: unknown email or wrong
// password. Also mapped to a 400 response by the API layer.
type ErroAutenticacao struct {
	Message string // Human readable reason, returned to the client
}

// Error implements the error interface
func (e *ErroAutenticacao) Error() string { return e.Message }

// NewErroAutenticacao builds an authentication error with the given message
func NewErroAutenticacao(message string) error {
	return &ErroAutenticacao{Message: message}
}
