package middleware

import (
	"errors"
	"net/http"

	"hireable-backend/internal/delivery/http/response"
	"hireable-backend/pkg/apperror"
	"hireable-backend/pkg/content"
	"hireable-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error a handler attached with c.Error.
// AppError messages are resolved in the request locale. Anything else is
// logged and answered with a generic 500.
func ErrorHandler(dict *content.Dictionary) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			err = apperror.Localized(http.StatusRequestEntityTooLarge, content.KeyErrUploadTooLarge, "Upload is too large")
		}

		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			logger.Log.Error("unhandled error", "error", err, "path", c.FullPath(), "request_id", c.GetString(response.RequestIDKey))
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			return
		}

		if appErr.Code >= http.StatusInternalServerError {
			logger.Log.Error("internal error", "error", appErr.Err, "path", c.FullPath(), "request_id", c.GetString(response.RequestIDKey))
			response.Error(c, appErr.Code, "An unexpected error occurred. Please try again later.", nil)
			return
		}

		var r content.Resolver = content.Fallback{}
		if dict != nil {
			r = dict.FromContext(c.Request.Context())
		}
		response.Error(c, appErr.Code, appErr.LocalizedMessage(r), nil)
	}
}
