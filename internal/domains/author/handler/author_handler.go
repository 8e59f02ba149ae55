package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dbtrain-backend/internal/domains/author/model"
	"dbtrain-backend/internal/domains/author/service"
	"dbtrain-backend/internal/shared/response"
)

// maxUploadBytes bounds the multipart body; the processor enforces the 5MB image limit itself
const maxUploadBytes = 6 << 20

type AuthorHandler struct {
	service service.ServiceInterface
}

func NewAuthorHandler(svc service.ServiceInterface) *AuthorHandler {
	return &AuthorHandler{
		service: svc,
	}
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /api/v1/authors
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Create(c *gin.Context) {
	var req model.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, created.ToResponse())
}

// ════════════════════════════════════════════════════════════════
// READ: GET /api/v1/authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, a.ToResponse())
}

// ════════════════════════════════════════════════════════════════
// READ: GET /api/v1/authors/by-username/:username
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) GetByUsername(c *gin.Context) {
	a, err := h.service.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, a.ToResponse())
}

// ════════════════════════════════════════════════════════════════
// READ: GET /api/v1/authors?limit=20&offset=0&sort_by=created_at&order=desc&search=
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) List(c *gin.Context) {
	var filter model.AuthorFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "invalid query parameters: "+err.Error())
		return
	}

	authors, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}

	items := make([]*model.AuthorResponse, 0, len(authors))
	for i := range authors {
		items = append(items, authors[i].ToResponse())
	}

	filter.ApplyPaging()
	response.SuccessWithMeta(c, http.StatusOK, items, &response.Meta{
		Limit:  filter.Limit,
		Offset: filter.Offset,
		Total:  total,
	})
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PATCH /api/v1/authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated.ToResponse())
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /api/v1/authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ════════════════════════════════════════════════════════════════
// PHOTO: PUT /api/v1/authors/:id/image (multipart field "image")
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) UploadImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.FromError(c, model.ErrInvalidImage)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "cannot read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(c, "cannot read uploaded file")
		return
	}

	updated, err := h.service.UploadImage(c.Request.Context(), id, data)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated.ToResponse())
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return uuid.Nil, false
	}
	return id, true
}
