package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/joefazee/betpoints/internal/logger"
	"github.com/joefazee/betpoints/models"
)

type errorKind struct {
	status  int
	code    string
	targets []error
}

var errorKinds = []errorKind{
	{http.StatusNotFound, "NOT_FOUND", []error{models.ErrRecordNotFound}},
	{http.StatusBadRequest, "INSUFFICIENT_BALANCE", []error{models.ErrInsufficientBalance}},
	{http.StatusConflict, "BET_UNAVAILABLE", []error{models.ErrBetUnavailable, models.ErrBetNotCancellable}},
	{http.StatusConflict, "BET_NOT_SETTLEABLE", []error{models.ErrBetNotSettleable, models.ErrSettlementInconsistent}},
	{http.StatusUnauthorized, "UNAUTHORIZED", []error{models.ErrUnauthorized, models.ErrInvalidLogin}},
	{http.StatusForbidden, "FORBIDDEN", []error{models.ErrForbidden, models.ErrInactiveAccount}},
	{http.StatusConflict, "CONFLICT", []error{models.ErrDuplicateEmail}},
	{http.StatusBadRequest, "INVALID_INPUT", []error{
		models.ErrInvalidBetAmount, models.ErrInvalidOdds, models.ErrInvalidSelection,
		models.ErrInvalidBetMode, models.ErrInvalidItemType, models.ErrInvalidRating,
		models.ErrInvalidOutcome, models.ErrGameNotOpen, models.ErrInvalidGameTransition,
		models.ErrInvalidGameTeams, models.ErrInvalidGameStatus, models.ErrEmptyContent, models.ErrInvalidUUID,
		models.ErrInvalidEmail, models.ErrPasswordTooShort, models.ErrInvalidName, models.ErrInvalidPhone,
		models.ErrInvalidBetTransition, models.ErrInvalidTransactionAmount, models.ErrInvalidTransactionType,
		models.ErrUnsupportedImage, models.ErrImageTooLarge,
	}},
	{http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", []error{models.ErrStorageDisabled}},
}

// HandleError maps a service error onto the response envelope. Unknown errors are
// logged and reported as 500.
func HandleError(c *gin.Context, log logger.Logger, err error) {
	for _, k := range errorKinds {
		for _, target := range k.targets {
			if errors.Is(err, target) {
				ErrorResponse(c, k.status, k.code, target.Error(), nil)
				return
			}
		}
	}

	if isTransient(err) {
		retryable := c.Request != nil && c.Request.Method == http.MethodGet
		log.Warn("transient failure", map[string]interface{}{
			"path":      c.FullPath(),
			"error":     err.Error(),
			"retryable": retryable,
		})
		ErrorResponse(c, http.StatusServiceUnavailable, "TRANSIENT",
			"The service is temporarily unavailable", gin.H{"retryable": retryable})
		return
	}

	log.Error(err, map[string]interface{}{"path": c.FullPath()})
	InternalErrorResponse(c, "An unexpected error occurred")
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03", "57014":
			return true
		}
	}
	return pgconn.SafeToRetry(err) || pgconn.Timeout(err)
}
