package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error represents an application error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// JSON returns the error as a JSON string
func (e *Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Messages shown to clients.
const (
	MsgInternal         = "Error interno del servidor"
	MsgMethodNotAllowed = "Método no permitido"
	MsgRouteNotFound    = "Ruta no encontrada"
)

// Validation is a 400 for missing or malformed input.
func Validation(message string) *Error {
	return New(http.StatusBadRequest, message, nil)
}

// Unauthorized is a 401.
func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message, nil)
}

// NotFound is a 404 for an unknown id.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message, nil)
}

// MethodNotAllowed is a 405.
func MethodNotAllowed() *Error {
	return New(http.StatusMethodNotAllowed, MsgMethodNotAllowed, nil)
}

// Conflict is a 409, e.g. duplicate email.
func Conflict(message string) *Error {
	return New(http.StatusConflict, message, nil)
}

// Internal wraps a store or network fault. The cause is kept for logging
// and never sent to the client.
func Internal(err error) *Error {
	return New(http.StatusInternalServerError, MsgInternal, err)
}

// From converts any error into an *Error. Unknown errors become a 500.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// Is reports whether err is an *Error carrying the given status code.
func Is(err error, code int) bool {
	var appErr *Error
	return stderrors.As(err, &appErr) && appErr.Code == code
}

// Respond writes err as {"error": message} and aborts the chain.
func Respond(c *gin.Context, err error) {
	appErr := From(err)
	if appErr.Code >= http.StatusInternalServerError && appErr.Err != nil {
		_ = c.Error(appErr.Err)
	}
	c.AbortWithStatusJSON(appErr.Code, gin.H{"error": appErr.Message})
}

// ErrorMiddleware turns errors attached to the context into a JSON response
// when the handler did not write one, and logs 5xx causes.
func ErrorMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		appErr := From(err)
		if appErr.Code >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
		}

		if !c.Writer.Written() {
			c.AbortWithStatusJSON(appErr.Code, gin.H{"error": appErr.Message})
		}
	}
}

// Recovery converts a panic into a 500 with the generic message.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": MsgInternal})
	})
}
