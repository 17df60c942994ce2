package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/Zarathale/ZaraSprite/chatlog"
	"github.com/Zarathale/ZaraSprite/internal/logger"
	"github.com/gin-gonic/gin"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Use errors.Respond() for errors coming out of the chat log core; it maps the
//     chatlog sentinels to status codes and logs server-side failures
//   - Use errors.BadRequest(), errors.NotFound(), etc. for transport-level problems
//   - Never log an error and also pass it to InternalError/Respond (avoid double logging)
//
// For the core, repositories and background jobs:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err)
//   - Storage failures wrap chatlog.ErrStorage so the caller can tell transient from
//     client-caused errors

// standard error codes
const (
	CodeNotFound            = "not_found"
	CodeValidationError     = "validation_error"
	CodeServerError         = "server_error"
	CodeBadRequest          = "bad_request"
	CodeTooManyRequests     = "too_many_requests"
	CodeInvalidPayload      = "invalid_payload"
	CodeInvalidTimestamp    = "invalid_timestamp"
	CodeStorageError        = "storage_error"
	CodeForeignKeyViolation = "foreign_key_violation"
)

// maps an error from the chat log core to a response
func Respond(c *gin.Context, err error) {
	switch {
	case stderrors.Is(err, chatlog.ErrInvalidPayload):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   CodeInvalidPayload,
			Message: "missing username or message",
			Details: err.Error(),
		})

	case stderrors.Is(err, chatlog.ErrInvalidTimestamp):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   CodeInvalidTimestamp,
			Message: "invalid timestamp",
			Details: err.Error(),
		})

	case stderrors.Is(err, chatlog.ErrNotFound):
		NotFound(c, "")

	case stderrors.Is(err, chatlog.ErrForeignKeyViolation):
		serverError(c, CodeForeignKeyViolation, "failed to record message", err)

	case stderrors.Is(err, chatlog.ErrStorage):
		serverError(c, CodeStorageError, "storage unavailable", err)

	default:
		InternalError(c, "", err)
	}
}

// returns a 404 not found error
func NotFound(c *gin.Context, resource string) {
	message := "resource not found"

	if resource != "" {
		message = resource + " not found"
	}

	c.JSON(http.StatusNotFound, ErrorResponse{
		Error:   CodeNotFound,
		Message: message,
	})
}

// returns a 400 bad request error
func BadRequest(c *gin.Context, message string, err error) {
	if message == "" {
		message = "invalid request"
	}

	response := ErrorResponse{
		Error:   CodeBadRequest,
		Message: message,
	}

	if err != nil {
		response.Details = sanitizeError(err)
	}

	c.JSON(http.StatusBadRequest, response)
}

// returns a 400 bad request error for binding failures
func ValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   CodeValidationError,
		Message: "request validation failed",
		Details: sanitizeError(err),
	})
}

// returns a 500 internal server error
func InternalError(c *gin.Context, message string, err error) {
	if message == "" {
		message = "an error occurred"
	}

	serverError(c, CodeServerError, message, err)
}

// returns a 429 too many requests error
func TooManyRequests(c *gin.Context, message string) {
	if message == "" {
		message = "too many requests"
	}

	c.JSON(http.StatusTooManyRequests, ErrorResponse{
		Error:   CodeTooManyRequests,
		Message: message,
	})
}

func serverError(c *gin.Context, code, message string, err error) {
	// log full error server-side with context
	logger.FromContext(c.Request.Context()).Error(message,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"category", classifyError(err).category,
		"error", err,
	)

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   code,
		Message: message,
		Details: sanitizeError(err),
	})
}
