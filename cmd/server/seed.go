package main

import (
	"context"
	"fmt"

	"ai4local/internal/services"
	"ai4local/pkg/config"
	"ai4local/pkg/logger"
)

// seedData 初始化演示数据，已存在演示用户时跳过
func seedData(ctx context.Context, cfg *config.SeedConfig, users userLookup, auth *services.AuthService,
	orgs *services.OrganizationService, customers *services.CustomerService, campaigns *services.CampaignService) error {
	appLogger := logger.GetLogger()
	if !cfg.DemoData {
		return nil
	}

	existing, err := users.FindByEmail(ctx, services.NormalizeEmail(cfg.DemoEmail))
	if err != nil {
		return err
	}
	if existing != nil {
		appLogger.Info("演示用户已存在，跳过种子数据")
		return nil
	}

	appLogger.Info("Starting seed data initialization...")

	result, err := auth.Register(ctx, services.RegisterInput{
		Email:     cfg.DemoEmail,
		Password:  cfg.DemoPassword,
		FirstName: "Demo",
		LastName:  "AI4Local",
	})
	if err != nil {
		return fmt.Errorf("创建演示用户失败: %w", err)
	}

	website := "https://ai4local.mg"
	org, err := orgs.Create(ctx, result.User.ID, services.CreateOrganizationInput{
		Name:    "Boutique Analakely",
		Website: &website,
	})
	if err != nil {
		return fmt.Errorf("创建演示组织失败: %w", err)
	}

	demoCustomers := []services.CreateCustomerInput{
		{Name: "Rakoto Jean", Email: "rakoto@example.mg", Tags: []string{"vip", "antananarivo"}},
		{Name: "Rasoa Marie", Email: "rasoa@example.mg", Tags: []string{"antananarivo"}},
		{Name: "Randria Paul", Email: "randria@example.mg", Tags: []string{"vip", "toamasina"}},
	}
	for _, input := range demoCustomers {
		input.OrganizationID = org.ID
		if _, err := customers.Create(ctx, input); err != nil {
			return fmt.Errorf("创建演示客户失败: %w", err)
		}
	}

	if _, err := campaigns.Create(ctx, services.CreateCampaignInput{
		OrganizationID: org.ID,
		Name:           "Promo de la rentrée",
		Type:           "sms",
		Content:        "Profitez de -15% sur toute la boutique cette semaine !",
		TargetTags:     []string{"vip"},
	}); err != nil {
		return fmt.Errorf("创建演示活动失败: %w", err)
	}

	appLogger.Info("Seed data initialization completed successfully")
	return nil
}
