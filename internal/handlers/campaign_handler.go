package handlers

import (
	"ai4local/internal/models"
	"ai4local/internal/repository"
	"ai4local/internal/services"
	"ai4local/pkg/pagination"
	"ai4local/pkg/response"

	"github.com/gin-gonic/gin"
)

type CampaignHandler struct {
	service *services.CampaignService
	orgs    *services.OrganizationService
}

func NewCampaignHandler(service *services.CampaignService, orgs *services.OrganizationService) *CampaignHandler {
	return &CampaignHandler{
		service: service,
		orgs:    orgs,
	}
}

func campaignFilter(c *gin.Context) (repository.CampaignFilter, *pagination.PageParams) {
	params := pagination.ParsePageParams(c)
	return repository.CampaignFilter{
		Status:      c.Query("status"),
		Type:        c.Query("type"),
		ListOptions: repository.ListOptions{Page: params.Page, PageSize: params.PageSize},
	}, params
}

// List 当前用户所有组织下的活动
func (h *CampaignHandler) List(c *gin.Context) {
	filter, params := campaignFilter(c)
	filter.OwnerID = currentUser(c).ID

	campaigns, total, err := h.service.FindAll(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithPage(c, campaigns, pagination.NewPageInfo(params.Page, params.PageSize, total))
}

// ListByOrganization 指定组织下的活动
func (h *CampaignHandler) ListByOrganization(c *gin.Context) {
	orgID, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if _, err := h.orgs.Authorize(ctx, orgID, currentUser(c).ID); err != nil {
		response.FromError(c, err)
		return
	}

	filter, params := campaignFilter(c)
	campaigns, total, err := h.service.FindByOrganization(ctx, orgID, filter)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithPage(c, campaigns, pagination.NewPageInfo(params.Page, params.PageSize, total))
}

// Create 在组织下创建活动
func (h *CampaignHandler) Create(c *gin.Context) {
	orgID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input services.CreateCampaignInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	input.OrganizationID = orgID
	if !validate(c, input) {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.orgs.Authorize(ctx, orgID, currentUser(c).ID); err != nil {
		response.FromError(c, err)
		return
	}
	campaign, err := h.service.Create(ctx, input)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, campaign)
}

// GetByID 获取活动
func (h *CampaignHandler) GetByID(c *gin.Context) {
	campaign, ok := h.load(c)
	if !ok {
		return
	}
	response.Success(c, campaign)
}

// Update 部分更新活动
func (h *CampaignHandler) Update(c *gin.Context) {
	var input services.UpdateCampaignInput
	id, ok := parseID(c, "id")
	if !ok || !bindAndValidate(c, &input) {
		return
	}
	if _, ok := h.load(c); !ok {
		return
	}

	ctx := c.Request.Context()
	// 迁移到其他组织时目标组织也必须属于当前用户
	if input.OrganizationID.Valid {
		if _, err := h.orgs.Authorize(ctx, input.OrganizationID.Value, currentUser(c).ID); err != nil {
			response.FromError(c, err)
			return
		}
	}

	campaign, err := h.service.Update(ctx, id, input)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, campaign)
}

// Delete 删除活动
func (h *CampaignHandler) Delete(c *gin.Context) {
	campaign, ok := h.load(c)
	if !ok {
		return
	}

	deleted, err := h.service.Remove(c.Request.Context(), campaign.ID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, deleted)
}

// Preview 目标受众预览
func (h *CampaignHandler) Preview(c *gin.Context) {
	campaign, ok := h.load(c)
	if !ok {
		return
	}

	preview, err := h.service.Preview(c.Request.Context(), campaign.ID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, preview)
}

// Templates 组织可用的渠道内容模板
func (h *CampaignHandler) Templates(c *gin.Context) {
	orgID, ok := parseID(c, "id")
	if !ok {
		return
	}
	if _, err := h.orgs.Authorize(c.Request.Context(), orgID, currentUser(c).ID); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"templates": h.service.Templates()})
}

// GenerateContent AI 生成活动文案，不自动保存
func (h *CampaignHandler) GenerateContent(c *gin.Context) {
	var input services.GenerateContentInput
	if !bindAndValidate(c, &input) {
		return
	}

	content, err := h.service.GenerateContent(c.Request.Context(), input)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"content": content})
}

func (h *CampaignHandler) load(c *gin.Context) (*models.Campaign, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return nil, false
	}
	ctx := c.Request.Context()
	campaign, err := h.service.FindOne(ctx, id)
	if err != nil {
		response.FromError(c, err)
		return nil, false
	}
	if _, err := h.orgs.Authorize(ctx, campaign.OrganizationID, currentUser(c).ID); err != nil {
		response.FromError(c, err)
		return nil, false
	}
	return campaign, true
}
