package handler

import (
	"errors"
	"net/http"
	"strconv"

	apperrors "noticeboard/pkg/app_errors"
	"noticeboard/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const UserIDHeader = "X-User-ID"

func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

// bindUUID 解析路徑上的 uuid，失敗時已回應 400
func bindUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + param})
		return uuid.Nil, false
	}
	return id, true
}

func bindIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event index"})
		return 0, false
	}
	return index, true
}

func bindUserID(c *gin.Context) (int, bool) {
	userID, err := strconv.Atoi(c.GetHeader(UserIDHeader))
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid " + UserIDHeader})
		return 0, false
	}
	return userID, true
}

func handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrDraftNotFound):
		log.Warn("Draft not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Draft not found",
		})
	case errors.Is(err, apperrors.ErrNoticeNotFound):
		log.Warn("Notice not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Notice not found",
		})
	case errors.Is(err, apperrors.ErrUserNotFound):
		log.Warn("User not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "User not found",
		})
	case errors.Is(err, apperrors.ErrEventIndexOutOfRange):
		log.Warn("Event index out of range")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Event index out of range",
		})
	case errors.Is(err, apperrors.ErrStaleRevision):
		log.Warn("Stale revision")
		c.JSON(http.StatusConflict, gin.H{
			"error": "Draft has changed, reload and retry",
		})
	case errors.Is(err, apperrors.ErrSubmissionInFlight):
		log.Warn("Submission in flight")
		c.JSON(http.StatusConflict, gin.H{
			"error": "Submission already in progress",
		})
	case errors.Is(err, apperrors.ErrInvalidEventField):
		log.Warn("Invalid event field")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid event field",
		})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid input",
		})
	case errors.Is(err, apperrors.ErrSubmissionFailed):
		log.Error("Submission failed")
		c.JSON(http.StatusBadGateway, gin.H{
			"error":     "Submission failed, please try again",
			"retryable": true,
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func handleSuccess(c *gin.Context, data interface{}, statusCode int) {
	if data != nil {
		c.JSON(statusCode, data)
	} else {
		c.Status(statusCode)
	}
}
