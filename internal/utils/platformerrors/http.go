package platformerrors

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// HTTPErrorResponse represents the standard error response format.
type HTTPErrorResponse struct {
	Detail string           `json:"detail"`
	Error  *HTTPErrorDetail `json:"error"`
}

// HTTPErrorDetail contains error details for HTTP responses.
type HTTPErrorDetail struct {
	Message   string            `json:"message"`
	Type      string            `json:"type"`
	Code      string            `json:"code,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
}

// WriteHTTPError writes a PlatformError as an HTTP response and aborts the chain.
func WriteHTTPError(c *gin.Context, err *PlatformError, log zerolog.Logger) {
	if err == nil {
		writeBody(c, http.StatusInternalServerError, "unknown error", "internal_error", "", "", nil)
		return
	}

	LogError(log, err)

	writeBody(c, ErrorTypeToHTTPStatus(err.Type), err.Message, errorTypeToString(err.Type), err.UUID, err.RequestID, err.Fields)
}

// WriteError writes a generic error as an HTTP response.
// Errors that are not PlatformErrors are treated as internal.
func WriteError(c *gin.Context, err error, log zerolog.Logger) {
	if err == nil {
		writeBody(c, http.StatusInternalServerError, "unknown error", "internal_error", "", "", nil)
		return
	}

	if platformErr := GetPlatformError(err); platformErr != nil {
		WriteHTTPError(c, platformErr, log)
		return
	}

	log.Error().Err(err).Msg("unhandled error")
	writeBody(c, http.StatusInternalServerError, "internal server error", "internal_error", "", "", nil)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(c *gin.Context, message string) {
	writeBody(c, http.StatusNotFound, message, "not_found_error", "", "", nil)
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(c *gin.Context, message string) {
	writeBody(c, http.StatusUnauthorized, message, "unauthorized_error", "", "", nil)
}

// WriteForbidden writes a 403 Forbidden response.
func WriteForbidden(c *gin.Context, message string) {
	writeBody(c, http.StatusForbidden, message, "forbidden_error", "", "", nil)
}

// WriteValidationError writes a 422 response with per-field reasons.
func WriteValidationError(c *gin.Context, message string, fields map[string]string) {
	writeBody(c, http.StatusUnprocessableEntity, message, "validation_error", "", "", fields)
}

func writeBody(c *gin.Context, status int, message, errType, code, requestID string, fields map[string]string) {
	c.AbortWithStatusJSON(status, HTTPErrorResponse{
		Detail: message,
		Error: &HTTPErrorDetail{
			Message:   message,
			Type:      errType,
			Code:      code,
			RequestID: requestID,
			Fields:    fields,
		},
	})
}

func errorTypeToString(t ErrorType) string {
	switch t {
	case ErrorTypeNotFound:
		return "not_found_error"
	case ErrorTypeValidation:
		return "validation_error"
	case ErrorTypeConflict:
		return "conflict_error"
	case ErrorTypeUnauthorized:
		return "unauthorized_error"
	case ErrorTypeForbidden:
		return "forbidden_error"
	case ErrorTypeQuotaExceeded:
		return "quota_exceeded_error"
	case ErrorTypeNotImplemented:
		return "not_implemented_error"
	case ErrorTypeExternal:
		return "external_error"
	case ErrorTypeDatabaseError:
		return "database_error"
	case ErrorTypeInternal:
		fallthrough
	default:
		return "internal_error"
	}
}
