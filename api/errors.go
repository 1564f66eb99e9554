package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/Domenick1991/parkbooking/internal/apperrors"
	"github.com/Domenick1991/parkbooking/internal/validation"
	"github.com/gin-gonic/gin"
)

const msgRequestTimeout = "Request timeout"

type messageResponse struct {
	Message string `json:"message"`
}

type issuesResponse struct {
	Issues validation.Issues `json:"issues"`
}

// writeError renders err and aborts the chain.
func writeError(c *gin.Context, err error) {
	status, body := errorResponse(err)
	c.AbortWithStatusJSON(status, body)
}

func errorResponse(err error) (int, any) {
	var issues validation.Issues
	if errors.As(err, &issues) {
		return http.StatusBadRequest, issuesResponse{Issues: issues}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable, messageResponse{Message: msgRequestTimeout}
	}

	appErr, ok := apperrors.As(err)
	if !ok {
		return http.StatusInternalServerError, messageResponse{Message: apperrors.MsgInternal}
	}
	switch appErr.Kind {
	case apperrors.KindForbidden:
		return http.StatusForbidden, messageResponse{Message: appErr.Message}
	case apperrors.KindNotFound:
		return http.StatusNotFound, messageResponse{Message: appErr.Message}
	case apperrors.KindConflict:
		return http.StatusUnprocessableEntity, messageResponse{Message: appErr.Message}
	default:
		return http.StatusInternalServerError, messageResponse{Message: apperrors.MsgInternal}
	}
}
