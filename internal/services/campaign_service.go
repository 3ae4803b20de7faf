package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"ai4local/internal/models"
	"ai4local/internal/repository"
	"ai4local/pkg/config"
	"ai4local/pkg/errors"
	"ai4local/pkg/textgen"

	"github.com/sirupsen/logrus"
)

// PreviewLimit 预览返回的客户数上限
const PreviewLimit = 10

// CampaignOptions 活动服务的可选行为
type CampaignOptions struct {
	StrictTransitions bool
	PromptTemplate    string
	MaxTokens         int
	Templates         map[string][]config.ContentTemplate
}

// CampaignPreview 活动目标受众预览
type CampaignPreview struct {
	Total     int64             `json:"total"`
	Customers []models.Customer `json:"customers"`
}

type CampaignService struct {
	campaigns repository.CampaignRepository
	orgs      repository.OrganizationRepository
	customers repository.CustomerRepository
	generator textgen.Generator
	opts      CampaignOptions
	log       logrus.FieldLogger
}

func NewCampaignService(
	campaigns repository.CampaignRepository,
	orgs repository.OrganizationRepository,
	customers repository.CustomerRepository,
	generator textgen.Generator,
	opts CampaignOptions,
	log logrus.FieldLogger,
) *CampaignService {
	if opts.PromptTemplate == "" {
		opts.PromptTemplate = config.DefaultPromptTemplate
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 200
	}
	if opts.Templates == nil {
		opts.Templates = config.DefaultContentTemplates
	}
	return &CampaignService{
		campaigns: campaigns,
		orgs:      orgs,
		customers: customers,
		generator: generator,
		opts:      opts,
		log:       log,
	}
}

func (s *CampaignService) FindAll(ctx context.Context, filter repository.CampaignFilter) ([]models.Campaign, int64, error) {
	return s.campaigns.List(ctx, filter)
}

func (s *CampaignService) FindByOrganization(ctx context.Context, orgID uint, filter repository.CampaignFilter) ([]models.Campaign, int64, error) {
	if err := s.requireOrganization(ctx, orgID); err != nil {
		return nil, 0, err
	}
	filter.OrganizationID = orgID
	return s.campaigns.List(ctx, filter)
}

func (s *CampaignService) FindOne(ctx context.Context, id uint) (*models.Campaign, error) {
	campaign, err := s.campaigns.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, errors.NotFound("Campaign", id)
	}
	return campaign, nil
}

// Create 写库前校验组织存在，新活动总是 draft
func (s *CampaignService) Create(ctx context.Context, input CreateCampaignInput) (*models.Campaign, error) {
	if err := s.requireOrganization(ctx, input.OrganizationID); err != nil {
		return nil, err
	}

	campaign := &models.Campaign{
		OrganizationID: input.OrganizationID,
		Name:           input.Name,
		Description:    input.Description,
		Type:           input.Type,
		Content:        input.Content,
		TargetTags:     NormalizeTags(input.TargetTags),
		Status:         models.CampaignStatusDraft,
		ScheduledAt:    input.ScheduledAt,
	}
	if err := s.campaigns.Create(ctx, campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

// Update 部分合并后整行写回
func (s *CampaignService) Update(ctx context.Context, id uint, input UpdateCampaignInput) (*models.Campaign, error) {
	campaign, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.OrganizationID.Valid && input.OrganizationID.Value != campaign.OrganizationID {
		if err := s.requireOrganization(ctx, input.OrganizationID.Value); err != nil {
			return nil, err
		}
		campaign.OrganizationID = input.OrganizationID.Value
	}

	if input.Status.Valid && s.opts.StrictTransitions &&
		!models.CanTransitionCampaign(campaign.Status, input.Status.Value) {
		return nil, errors.InvalidParam(fmt.Sprintf("cannot change campaign status from %s to %s",
			campaign.Status, input.Status.Value))
	}

	input.Name.Apply(&campaign.Name)
	input.Description.ApplyPtr(&campaign.Description)
	input.Type.Apply(&campaign.Type)
	input.Content.Apply(&campaign.Content)
	if input.TargetTags.Set {
		campaign.TargetTags = NormalizeTags(input.TargetTags.Value)
	}
	input.Status.Apply(&campaign.Status)
	input.ScheduledAt.ApplyPtr(&campaign.ScheduledAt)
	input.SentAt.ApplyPtr(&campaign.SentAt)

	if err := s.campaigns.Save(ctx, campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

func (s *CampaignService) Remove(ctx context.Context, id uint) (bool, error) {
	if _, err := s.FindOne(ctx, id); err != nil {
		return false, err
	}
	deleted, err := s.campaigns.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		return false, errors.NotFound("Campaign", id)
	}
	return true, nil
}

// GenerateContent 组装提示词并调用文本生成服务，失败原因只写日志
func (s *CampaignService) GenerateContent(ctx context.Context, input GenerateContentInput) (string, error) {
	prompt := s.composePrompt(input)

	text, err := s.generator.Generate(ctx, prompt, s.opts.MaxTokens)
	if err != nil {
		s.log.WithError(err).WithField("type", input.Type).Error("content generation failed")
		return "", errors.GenerationFailed()
	}
	return text, nil
}

// 单次替换，prompt 中出现的占位符不会被再次展开
func (s *CampaignService) composePrompt(input GenerateContentInput) string {
	return strings.NewReplacer("{type}", input.Type, "{prompt}", input.Prompt).Replace(s.opts.PromptTemplate)
}

// Templates 按渠道分组的内容模板，返回副本
func (s *CampaignService) Templates() map[string][]config.ContentTemplate {
	out := make(map[string][]config.ContentTemplate, len(s.opts.Templates))
	for channel, templates := range s.opts.Templates {
		out[channel] = slices.Clone(templates)
	}
	return out
}

// Preview 同组织内带有全部目标标签的客户
func (s *CampaignService) Preview(ctx context.Context, id uint) (*CampaignPreview, error) {
	campaign, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	customers, total, err := s.customers.List(ctx, repository.CustomerFilter{
		OrganizationID: campaign.OrganizationID,
		Tags:           campaign.TargetTags,
		ListOptions:    repository.ListOptions{Page: 1, PageSize: PreviewLimit},
	})
	if err != nil {
		return nil, err
	}
	return &CampaignPreview{Total: total, Customers: customers}, nil
}

func (s *CampaignService) requireOrganization(ctx context.Context, orgID uint) error {
	org, err := s.orgs.FindByID(ctx, orgID)
	if err != nil {
		return err
	}
	if org == nil {
		return errors.NotFound("Organization", orgID)
	}
	return nil
}
