package handler

import (
	"net/http"

	"noticeboard/internal/service"

	"github.com/gin-gonic/gin"
)

type TopicHandler struct {
	service service.TopicService
}

func NewTopicHandler(service service.TopicService) *TopicHandler {
	return &TopicHandler{service: service}
}

func (h *TopicHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("topics", h.List)
	}
}

func (h *TopicHandler) List(c *gin.Context) {
	topics, err := h.service.List(c)
	if err != nil {
		handleError(c, err, "ListTopics")
		return
	}
	handleSuccess(c, topics, http.StatusOK)
}
