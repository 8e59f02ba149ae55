package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dbtrain-backend/internal/domains/profile/model"
	"dbtrain-backend/internal/domains/profile/service"
	"dbtrain-backend/internal/shared/response"
)

// ProfileHandler serves /api/v1/authors/:id/profile
type ProfileHandler struct {
	service service.ServiceInterface
}

func NewProfileHandler(svc service.ServiceInterface) *ProfileHandler {
	return &ProfileHandler{service: svc}
}

// profileResponse adds the rendered caption to a profile
type profileResponse struct {
	*model.Profile
	Caption string `json:"caption"`
}

func toResponse(p *model.Profile) profileResponse {
	return profileResponse{Profile: p, Caption: p.String()}
}

// Create - POST /api/v1/authors/:id/profile
func (h *ProfileHandler) Create(c *gin.Context) {
	authorID, ok := parseAuthorID(c)
	if !ok {
		return
	}

	var req model.CreateProfileRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "invalid request body: "+err.Error())
			return
		}
	}

	created, err := h.service.Create(c.Request.Context(), authorID, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, toResponse(created))
}

// Get - GET /api/v1/authors/:id/profile
func (h *ProfileHandler) Get(c *gin.Context) {
	authorID, ok := parseAuthorID(c)
	if !ok {
		return
	}

	p, err := h.service.GetByAuthor(c.Request.Context(), authorID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, toResponse(p))
}

// UpdateStage - PATCH /api/v1/authors/:id/profile
func (h *ProfileHandler) UpdateStage(c *gin.Context) {
	authorID, ok := parseAuthorID(c)
	if !ok {
		return
	}

	var req model.UpdateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	p, err := h.service.UpdateStage(c.Request.Context(), authorID, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, toResponse(p))
}

func parseAuthorID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return uuid.Nil, false
	}
	return id, true
}
