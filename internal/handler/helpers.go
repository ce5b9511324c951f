package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/bookhubapp/bookhub/internal/middleware"
	"github.com/bookhubapp/bookhub/internal/pkg/errcode"
	appErr "github.com/bookhubapp/bookhub/internal/pkg/errors"
	"github.com/bookhubapp/bookhub/internal/pkg/response"
)

func getUserID(c *gin.Context) string {
	value, _ := c.Get(middleware.ContextUserIDKey)
	userID, _ := value.(string)
	return userID
}

func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	logutil.GetLogger(c.Request.Context()).Info("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("user_id", getUserID(c)),
		zap.Error(err),
	)
	switch {
	case errors.Is(err, appErr.ErrUserNotFound):
		response.Error(c, errcode.ErrUserNotFound, "user not found")
	case errors.Is(err, appErr.ErrNoCodeIssued):
		response.Error(c, errcode.ErrNoCodeIssued, "no code issued, request a new one")
	case errors.Is(err, appErr.ErrCodeMismatch):
		response.Error(c, errcode.ErrCodeMismatch, "code does not match")
	case errors.Is(err, appErr.ErrCodeExpired):
		response.Error(c, errcode.ErrCodeExpired, "code expired, request a new one")
	case errors.Is(err, appErr.ErrPasswordMismatch):
		response.Error(c, errcode.ErrPasswordMismatch, "passwords do not match")
	case errors.Is(err, appErr.ErrDeliveryFailure):
		response.Error(c, errcode.ErrDeliveryFailure, "could not send email")
	case errors.Is(err, appErr.ErrUnauthorized):
		response.Error(c, errcode.ErrUnauthorized, "unauthorized")
	case errors.Is(err, appErr.ErrForbidden):
		response.Error(c, errcode.ErrForbidden, "forbidden")
	case errors.Is(err, appErr.ErrNotFound):
		response.Error(c, errcode.ErrNotFound, "not found")
	case errors.Is(err, appErr.ErrInvalid):
		response.Error(c, errcode.ErrInvalid, "invalid request")
	case errors.Is(err, appErr.ErrConflict):
		response.Error(c, errcode.ErrConflict, "conflict")
	case errors.Is(err, appErr.ErrTooMany):
		response.Error(c, errcode.ErrTooMany, "too many requests")
	case errors.Is(err, appErr.ErrCatalogUnavailable):
		response.Error(c, errcode.ErrCatalogUnavailable, "catalog unavailable")
	default:
		response.Error(c, errcode.ErrInternal, "internal error")
	}
}
