package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/evstaffing/invoice-service/internal"
)

// Respond converts a Go value to JSON and sends it to the client with the corresponded status code.
func Respond(ctx *gin.Context, data interface{}, statusCode int) error {
	if v, ok := internal.DataFromContext(ctx); ok {
		v.StatusCode = statusCode
	}

	// If there is nothing to marshal then set status code and return.
	if data == nil || statusCode == http.StatusNoContent {
		ctx.Status(statusCode)
		return nil
	}

	ctx.JSON(statusCode, data)

	return nil
}

// RespondError sends an error response back to the client. Only client errors
// carry their message; server errors get the generic status text.
func RespondError(ctx *gin.Context, err error) error {
	status := http.StatusInternalServerError

	var webErr *Error
	if errors.As(err, &webErr) {
		if webErr.Status < http.StatusInternalServerError {
			return Respond(ctx, ErrorResponse{Error: webErr.Err.Error()}, webErr.Status)
		}

		status = webErr.Status
	}

	return Respond(ctx, ErrorResponse{Error: http.StatusText(status)}, status)
}
