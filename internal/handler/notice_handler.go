package handler

import (
	"net/http"

	"noticeboard/internal/service"

	"github.com/gin-gonic/gin"
)

type NoticeHandler struct {
	service service.NoticeService
}

func NewNoticeHandler(service service.NoticeService) *NoticeHandler {
	return &NoticeHandler{service: service}
}

func (h *NoticeHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("notices", h.List)
		router.GET("notices/:uuid", h.GetByNoticeID)
	}
}

func (h *NoticeHandler) List(c *gin.Context) {
	notices, err := h.service.List(c)
	if err != nil {
		handleError(c, err, "ListNotices")
		return
	}
	handleSuccess(c, notices, http.StatusOK)
}

func (h *NoticeHandler) GetByNoticeID(c *gin.Context) {
	noticeID, ok := bindUUID(c, "uuid")
	if !ok {
		return
	}

	notice, err := h.service.GetByNoticeID(c, noticeID)
	if err != nil {
		handleError(c, err, "GetNotice")
		return
	}
	handleSuccess(c, notice, http.StatusOK)
}
