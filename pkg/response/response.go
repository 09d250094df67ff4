package response

import "github.com/gin-gonic/gin"

// Envelope is the success payload wrapper shared by every endpoint.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// Error is an expected API failure with an HTTP status code attached.
// Usecases return it for known failure conditions; anything else is
// treated as an internal error.
type Error struct {
	Code    int      `json:"statusCode"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(code int, message string) *Error {
	return &Error{Code: code, Message: message, Errors: []string{}}
}

// OK writes the success envelope.
func OK(c *gin.Context, code int, data any, message string) {
	c.JSON(code, Envelope{
		StatusCode: code,
		Data:       data,
		Message:    message,
		Success:    code < 400,
	})
}

// Fail writes the failure envelope. Unknown error types are reported as a
// generic internal error so no internals leak to clients.
func Fail(c *gin.Context, err error) {
	apiErr, ok := err.(*Error)
	if !ok {
		apiErr = NewError(500, "internal server error")
	}

	c.JSON(apiErr.Code, gin.H{
		"statusCode": apiErr.Code,
		"message":    apiErr.Message,
		"success":    false,
		"errors":     apiErr.Errors,
	})
}

// AbortFail is Fail plus request abortion, for middleware use.
func AbortFail(c *gin.Context, err error) {
	Fail(c, err)
	c.Abort()
}
