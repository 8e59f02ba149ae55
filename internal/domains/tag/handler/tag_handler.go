package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dbtrain-backend/internal/domains/tag/model"
	"dbtrain-backend/internal/domains/tag/service"
	"dbtrain-backend/internal/shared/response"
)

type TagHandler struct {
	service service.ServiceInterface
}

func NewTagHandler(svc service.ServiceInterface) *TagHandler {
	return &TagHandler{service: svc}
}

// Create - POST /api/v1/tags
func (h *TagHandler) Create(c *gin.Context) {
	var req model.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	tag, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, tag)
}

// List - GET /api/v1/tags
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.service.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, tags)
}

// Delete - DELETE /api/v1/tags/:id
func (h *TagHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
