package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dbtrain-backend/internal/domains/entry/model"
	"dbtrain-backend/internal/domains/entry/service"
	"dbtrain-backend/internal/shared/response"
)

type EntryHandler struct {
	service service.ServiceInterface
}

func NewEntryHandler(svc service.ServiceInterface) *EntryHandler {
	return &EntryHandler{service: svc}
}

// entryResponse adds the rendered preview to an entry
type entryResponse struct {
	*model.Entry
	Preview string `json:"preview"`
}

func toResponse(e *model.Entry) entryResponse {
	return entryResponse{Entry: e, Preview: e.Preview()}
}

// Create - POST /api/v1/authors/:id/entries
func (h *EntryHandler) Create(c *gin.Context) {
	authorID, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req model.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	entry, err := h.service.Create(c.Request.Context(), authorID, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, toResponse(entry))
}

// ListByAuthor - GET /api/v1/authors/:id/entries?limit=20&offset=0
func (h *EntryHandler) ListByAuthor(c *gin.Context) {
	authorID, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var filter model.EntryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "invalid query parameters: "+err.Error())
		return
	}

	entries, total, err := h.service.ListByAuthor(c.Request.Context(), authorID, filter)
	if err != nil {
		response.FromError(c, err)
		return
	}

	items := make([]entryResponse, 0, len(entries))
	for i := range entries {
		items = append(items, toResponse(&entries[i]))
	}

	filter.Normalize()
	response.SuccessWithMeta(c, http.StatusOK, items, &response.Meta{
		Limit:  filter.Limit,
		Offset: filter.Offset,
		Total:  total,
	})
}

// GetByID - GET /api/v1/entries/:id
func (h *EntryHandler) GetByID(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	entry, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, toResponse(entry))
}

// AttachTags - POST /api/v1/entries/:id/tags
func (h *EntryHandler) AttachTags(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req model.AttachTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	entry, err := h.service.AttachTags(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, toResponse(entry))
}

// DetachTag - DELETE /api/v1/entries/:id/tags/:tagId
func (h *EntryHandler) DetachTag(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	tagID, ok := parseUUID(c, "tagId")
	if !ok {
		return
	}

	if err := h.service.DetachTag(c.Request.Context(), id, tagID); err != nil {
		response.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete - DELETE /api/v1/entries/:id
func (h *EntryHandler) Delete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		response.BadRequest(c, "invalid UUID format: "+param)
		return uuid.Nil, false
	}
	return id, true
}
