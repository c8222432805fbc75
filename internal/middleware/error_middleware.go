package middleware

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Calabangata/Graduation-System/internal/app/models/dto"
	"github.com/Calabangata/Graduation-System/internal/pkg/apperrors"
	"github.com/Calabangata/Graduation-System/internal/pkg/logger"
)

// HandleAPIError maps service errors to HTTP responses. Every workflow error
// wraps one of the apperrors kinds, so the mapping is a chain of errors.Is
// checks.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(404, dto.APIResponse{
			Error:     dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error()),
			Timestamp: time.Now(),
		})
	case errors.Is(err, apperrors.ErrDuplicateAction):
		c.JSON(409, dto.APIResponse{
			Error:     dto.NewErrorDetail(dto.ErrorCodeDuplicateAction, err.Error()),
			Timestamp: time.Now(),
		})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(409, dto.APIResponse{
			Error:     dto.NewErrorDetail(dto.ErrorCodeResourceConflict, err.Error()),
			Timestamp: time.Now(),
		})
	case errors.Is(err, apperrors.ErrForbiddenAction):
		c.JSON(403, dto.APIResponse{
			Error:     dto.NewErrorDetail(dto.ErrorCodeForbiddenAction, err.Error()),
			Timestamp: time.Now(),
		})
	case errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(400, dto.APIResponse{
			Error:     dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error()),
			Timestamp: time.Now(),
		})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(401, dto.APIResponse{
			Error:     dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials"),
			Timestamp: time.Now(),
		})
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(401, dto.APIResponse{
			Error:     dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired"),
			Timestamp: time.Now(),
		})
	case errors.Is(err, apperrors.ErrTokenInvalid):
		c.JSON(401, dto.APIResponse{
			Error:     dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token"),
			Timestamp: time.Now(),
		})
	case errors.Is(err, apperrors.ErrTokenRevoked):
		c.JSON(401, dto.APIResponse{
			Error:     dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Token revoked"),
			Timestamp: time.Now(),
		})
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		c.JSON(409, dto.APIResponse{
			Error:     dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already exists"),
			Timestamp: time.Now(),
		})
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		c.JSON(500, dto.APIResponse{
			Error:     dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
			Timestamp: time.Now(),
		})
	}
}
