package service

// Error codes accumulated on a Response during password lifecycle operations.
// They identify expected validation outcomes; unexpected failures surface as
// Go errors instead.
const (
	CodeInvalidCustomer  = "invalidCustomer"
	CodeEmailNotFound    = "emailNotFound"
	CodeInactiveUser     = "inactiveUser"
	CodeInvalidPassword  = "invalidPassword"
	CodePasswordMismatch = "passwordMismatch"
	CodeInvalidToken     = "invalidToken"
	CodeTokenExpired     = "tokenExpired"
)

// Response accumulates validation error codes for a password lifecycle
// operation. An empty Response means the operation succeeded.
type Response struct {
	errorCodes []string
}

// NewResponse creates an empty response.
func NewResponse() *Response {
	return &Response{}
}

// AddErrorCode records a validation failure. Codes accumulate in the order
// they are added.
func (r *Response) AddErrorCode(code string) {
	r.errorCodes = append(r.errorCodes, code)
}

// HasErrors reports whether any error code was recorded.
func (r *Response) HasErrors() bool {
	return len(r.errorCodes) > 0
}

// HasErrorCode reports whether the given code was recorded.
func (r *Response) HasErrorCode(code string) bool {
	for _, c := range r.errorCodes {
		if c == code {
			return true
		}
	}
	return false
}

// ErrorCodes returns the recorded codes in order.
func (r *Response) ErrorCodes() []string {
	return r.errorCodes
}
