// internal/common/errors/handler.go
package errors

// ErrorHandler is the single place fetch failures are surfaced. Callers
// degrade their own state; the handler only records what happened.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle logs err with its normalized code. NotFound is logged as a warning,
// everything else as an error. It returns the normalized error.
func (h *ErrorHandler) Handle(operation string, err error, fields map[string]interface{}) *StandardError {
	if err == nil {
		return nil
	}
	stdErr := Normalize(err)

	logFields := map[string]interface{}{
		"operation":     operation,
		"errorCode":     string(stdErr.Code),
		"errorCategory": GetErrorCategory(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
	}
	for k, v := range stdErr.Metadata {
		logFields[k] = v
	}
	for k, v := range fields {
		logFields[k] = v
	}

	if stdErr.Code == ErrCodeNotFound {
		h.logger.Warn("record not found", logFields)
	} else {
		h.logger.Error("operation failed", logFields)
	}
	return stdErr
}
