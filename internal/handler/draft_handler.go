package handler

import (
	"net/http"
	"strconv"

	"noticeboard/internal/model"
	"noticeboard/internal/service"

	"github.com/gin-gonic/gin"
)

type DraftHandler struct {
	service service.ComposerService
}

func NewDraftHandler(service service.ComposerService) *DraftHandler {
	return &DraftHandler{service: service}
}

func (h *DraftHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("drafts", h.Open)
		router.GET("drafts/:uuid", h.Get)
		router.DELETE("drafts/:uuid", h.Discard)
		router.PUT("drafts/:uuid/title", h.SetTitle)
		router.PUT("drafts/:uuid/body", h.SetBody)
		router.PUT("drafts/:uuid/tags", h.SetTags)
		router.POST("drafts/:uuid/tags/:topic/toggle", h.ToggleTag)
		router.PUT("drafts/:uuid/attachments", h.SetAttachments)
		router.POST("drafts/:uuid/events", h.AddEvent)
		router.PATCH("drafts/:uuid/events/:index", h.UpdateEventField)
		router.DELETE("drafts/:uuid/events/:index", h.DeleteEvent)
		router.GET("drafts/:uuid/preview", h.Preview)
		router.POST("drafts/:uuid/submit", h.Submit)
	}
}

type SetTitleRequest struct {
	Title *string `json:"title" binding:"required"`
}

// SetBodyRequest body 為 rich-text 編輯器序列化後的字串，原樣保存
type SetBodyRequest struct {
	Body *string `json:"body" binding:"required"`
}

type SetTagsRequest struct {
	Tags []string `json:"tags"`
}

type SetAttachmentsRequest struct {
	AttachedImages []string `json:"attached_images"`
	AttachedFiles  []string `json:"attached_files"`
}

// UpdateEventFieldRequest revision 可省略；帶上時必須與草稿目前的 revision 相同
type UpdateEventFieldRequest struct {
	Field    model.EventField `json:"field" binding:"required"`
	Value    *string          `json:"value" binding:"required"`
	Revision *int64           `json:"revision"`
}

func (h *DraftHandler) Open(c *gin.Context) {
	userID, ok := bindUserID(c)
	if !ok {
		return
	}

	draft, err := h.service.Open(c, userID)
	if err != nil {
		handleError(c, err, "OpenDraft")
		return
	}
	handleSuccess(c, draft, http.StatusCreated)
}

func (h *DraftHandler) Get(c *gin.Context) {
	draftID, ok := bindUUID(c, "uuid")
	if !ok {
		return
	}

	draft, err := h.service.Get(c, draftID)
	if err != nil {
		handleError(c, err, "GetDraft")
		return
	}
	handleSuccess(c, draft, http.StatusOK)
}

func (h *DraftHandler) Discard(c *gin.Context) {
	draftID, ok := bindUUID(c, "uuid")
	if !ok {
		return
	}

	if err := h.service.Discard(c, draftID); err != nil {
		handleError(c, err, "DiscardDraft")
		return
	}
	handleSuccess(c, nil, http.StatusNoContent)
}

func (h *DraftHandler) SetTitle(c *gin.Context) {
	draftID, ok := bindUUID(c, "uuid")
	if !ok {
		return
	}
	var req SetTitleRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	draft, err := h.service.SetTitle(c, draftID, *req.Title)
	if err != nil {
		handleError(c, err, "SetTitle")
		return
	}
	handleSuccess(c, draft, http.StatusOK)
}

func (h *DraftHandler) SetBody(c *gin.Context) {
	draftID, ok := bindUUID(c, "uuid")
	if !ok {
		return
	}
	var req SetBodyRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	draft, err := h.service.SetBody(c, draftID, *req.Body)
	if err != nil {
		handleError(c, err, "SetBody")
		return
	}
	handleSuccess(c, draft, http.StatusOK)
}

func (h *DraftHandler) SetTags(c *gin.Context) {
	draftID, ok := bindUUID(c, "uuid")
	if !ok {
		return
	}
	var req SetTagsRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	draft, err := h.service.SetTags(c, draftID, req.Tags)
	if err != nil {
		handleError(c, err, "SetTags")
		return
	}
	handleSuccess(c, draft, http.StatusOK)
}

func (h *DraftHandler) ToggleTag(c *gin.Context) {
	draftID, ok := bindUUID(c, "uuid")
	if !ok {
		return
	}

	draft, err := h.service.ToggleTag(c, draftID, c.Param("topic"))
	if err != nil {
		handleError(c, err, "ToggleTag")
		return
	}
	handleSuccess(c, draft, http.StatusOK)
}

func (h *DraftHandler) SetAttachments(c *gin.Context) {
	draftID, ok := bindUUID(c, "uuid")
	if !ok {
		return
	}
	var req SetAttachmentsRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	draft, err := h.service.SetAttachments(c, draftID, req.AttachedImages, req.AttachedFiles)
	if err != nil {
		handleError(c, err, "SetAttachments")
		return
	}
	handleSuccess(c, draft, http.StatusOK)
}

func (h *DraftHandler) AddEvent(c *gin.Context) {
	draftID, ok := bindUUID(c, "uuid")
	if !ok {
		return
	}

	draft, err := h.service.AddEvent(c, draftID)
	if err != nil {
		handleError(c, err, "AddEvent")
		return
	}
	handleSuccess(c, draft, http.StatusCreated)
}

func (h *DraftHandler) UpdateEventField(c *gin.Context) {
	draftID, ok := bindUUID(c, "uuid")
	if !ok {
		return
	}
	index, ok := bindIndex(c)
	if !ok {
		return
	}
	var req UpdateEventFieldRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	draft, err := h.service.UpdateEventField(c, draftID, index, req.Field, *req.Value, req.Revision)
	if err != nil {
		handleError(c, err, "UpdateEventField")
		return
	}
	handleSuccess(c, draft, http.StatusOK)
}

func (h *DraftHandler) DeleteEvent(c *gin.Context) {
	draftID, ok := bindUUID(c, "uuid")
	if !ok {
		return
	}
	index, ok := bindIndex(c)
	if !ok {
		return
	}

	var revision *int64
	if raw, ok := c.GetQuery("revision"); ok {
		rev, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid revision"})
			return
		}
		revision = &rev
	}

	draft, err := h.service.DeleteEvent(c, draftID, index, revision)
	if err != nil {
		handleError(c, err, "DeleteEvent")
		return
	}
	handleSuccess(c, draft, http.StatusOK)
}

func (h *DraftHandler) Preview(c *gin.Context) {
	draftID, ok := bindUUID(c, "uuid")
	if !ok {
		return
	}

	vm, err := h.service.Preview(c, draftID)
	if err != nil {
		handleError(c, err, "Preview")
		return
	}
	handleSuccess(c, vm, http.StatusOK)
}

func (h *DraftHandler) Submit(c *gin.Context) {
	draftID, ok := bindUUID(c, "uuid")
	if !ok {
		return
	}

	result, err := h.service.Submit(c, draftID)
	if err != nil {
		handleError(c, err, "Submit")
		return
	}
	handleSuccess(c, result, http.StatusAccepted)
}
