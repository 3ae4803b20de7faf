package handlers

import (
	"ai4local/internal/models"
	"ai4local/internal/repository"
	"ai4local/internal/services"
	"ai4local/pkg/pagination"
	"ai4local/pkg/response"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	service *services.CustomerService
	orgs    *services.OrganizationService
}

func NewCustomerHandler(service *services.CustomerService, orgs *services.OrganizationService) *CustomerHandler {
	return &CustomerHandler{
		service: service,
		orgs:    orgs,
	}
}

func customerFilter(c *gin.Context) (repository.CustomerFilter, *pagination.PageParams) {
	params := pagination.ParsePageParams(c)
	return repository.CustomerFilter{
		Search:      c.Query("search"),
		Tags:        splitQueryList(c, "tags"),
		ListOptions: repository.ListOptions{Page: params.Page, PageSize: params.PageSize},
	}, params
}

// List 当前用户所有组织下的客户
func (h *CustomerHandler) List(c *gin.Context) {
	filter, params := customerFilter(c)
	filter.OwnerID = currentUser(c).ID

	customers, total, err := h.service.FindAll(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithPage(c, customers, pagination.NewPageInfo(params.Page, params.PageSize, total))
}

// ListByOrganization 指定组织下的客户
func (h *CustomerHandler) ListByOrganization(c *gin.Context) {
	orgID, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if _, err := h.orgs.Authorize(ctx, orgID, currentUser(c).ID); err != nil {
		response.FromError(c, err)
		return
	}

	filter, params := customerFilter(c)
	customers, total, err := h.service.FindByOrganization(ctx, orgID, filter)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithPage(c, customers, pagination.NewPageInfo(params.Page, params.PageSize, total))
}

// Create 在组织下创建客户
func (h *CustomerHandler) Create(c *gin.Context) {
	orgID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input services.CreateCustomerInput
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
	customer, err := h.service.Create(ctx, input)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, customer)
}

// GetByID 获取客户
func (h *CustomerHandler) GetByID(c *gin.Context) {
	customer, ok := h.load(c)
	if !ok {
		return
	}
	response.Success(c, customer)
}

// Update 更新客户
func (h *CustomerHandler) Update(c *gin.Context) {
	var input services.UpdateCustomerInput
	id, ok := parseID(c, "id")
	if !ok || !bindAndValidate(c, &input) {
		return
	}
	if _, ok := h.load(c); !ok {
		return
	}

	customer, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, customer)
}

// Delete 删除客户
func (h *CustomerHandler) Delete(c *gin.Context) {
	customer, ok := h.load(c)
	if !ok {
		return
	}

	deleted, err := h.service.Remove(c.Request.Context(), customer.ID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, deleted)
}

// load 加载客户并校验组织归属
func (h *CustomerHandler) load(c *gin.Context) (*models.Customer, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return nil, false
	}
	ctx := c.Request.Context()
	customer, err := h.service.FindOne(ctx, id)
	if err != nil {
		response.FromError(c, err)
		return nil, false
	}
	if _, err := h.orgs.Authorize(ctx, customer.OrganizationID, currentUser(c).ID); err != nil {
		response.FromError(c, err)
		return nil, false
	}
	return customer, true
}
