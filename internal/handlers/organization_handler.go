package handlers

import (
	"ai4local/internal/services"
	"ai4local/pkg/response"

	"github.com/gin-gonic/gin"
)

type OrganizationHandler struct {
	service *services.OrganizationService
}

func NewOrganizationHandler(service *services.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{service: service}
}

// Create 创建组织
func (h *OrganizationHandler) Create(c *gin.Context) {
	var input services.CreateOrganizationInput
	if !bindAndValidate(c, &input) {
		return
	}

	org, err := h.service.Create(c.Request.Context(), currentUser(c).ID, input)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, org)
}

// List 当前用户名下的组织
func (h *OrganizationHandler) List(c *gin.Context) {
	orgs, err := h.service.FindByOwner(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, orgs)
}

// GetByID 获取组织
func (h *OrganizationHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	org, err := h.service.Authorize(c.Request.Context(), id, currentUser(c).ID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, org)
}

// Update 更新组织
func (h *OrganizationHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input services.UpdateOrganizationInput
	if !bindAndValidate(c, &input) {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.service.Authorize(ctx, id, currentUser(c).ID); err != nil {
		response.FromError(c, err)
		return
	}
	org, err := h.service.Update(ctx, id, input)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, org)
}

// Delete 删除组织
func (h *OrganizationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.service.Authorize(ctx, id, currentUser(c).ID); err != nil {
		response.FromError(c, err)
		return
	}
	deleted, err := h.service.Remove(ctx, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, deleted)
}
