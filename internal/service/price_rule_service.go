package service

import (
	"context"
	"strings"

	"coupon-generator/internal/model"
	"coupon-generator/internal/shopify"
	"coupon-generator/pkg/apierror"
)

const (
	targetTypeLineItem       = "line_item"
	targetSelectionAll       = "all"
	allocationMethodAcross   = "across"
	customerSelectionAll     = "all"
	missingPriceRuleFieldMsg = "Missing required fields: title, value_type, value, starts_at"
)

type PriceRuleService struct {
	gateway shopify.Gateway
}

func NewPriceRuleService(gateway shopify.Gateway) *PriceRuleService {
	return &PriceRuleService{gateway: gateway}
}

func (s *PriceRuleService) Create(ctx context.Context, brand model.Brand, req model.PriceRuleRequest) (model.PriceRule, error) {
	rule, err := BuildPriceRule(req)
	if err != nil {
		return model.PriceRule{}, err
	}

	return s.gateway.CreatePriceRule(ctx, brand, rule)
}

func (s *PriceRuleService) List(ctx context.Context, brand model.Brand) ([]model.PriceRule, error) {
	return s.gateway.ListPriceRules(ctx, brand)
}

func (s *PriceRuleService) Delete(ctx context.Context, brand model.Brand, rawID string) (model.ID, error) {
	if strings.TrimSpace(rawID) == "" {
		return 0, apierror.Validation("Price rule ID is required")
	}

	id, err := model.ParseID(rawID)
	if err != nil {
		return 0, apierror.Validation("Price rule ID must be a positive integer")
	}

	return id, s.gateway.DeletePriceRule(ctx, brand, id)
}

// BuildPriceRule turns a form request into the Shopify payload. The rule
// always targets every line item for every customer, and the value is sent
// negated.
func BuildPriceRule(req model.PriceRuleRequest) (model.PriceRule, error) {
	title := strings.TrimSpace(req.Title)
	valueType := strings.TrimSpace(req.ValueType)
	startsAt := strings.TrimSpace(req.StartsAt)

	if title == "" || valueType == "" || req.Value == nil || startsAt == "" {
		return model.PriceRule{}, apierror.Validation(missingPriceRuleFieldMsg)
	}

	if valueType != model.ValueTypePercentage && valueType != model.ValueTypeFixedAmount {
		return model.PriceRule{}, apierror.Validation("value_type must be percentage or fixed_amount")
	}

	rule := model.PriceRule{
		Title:             title,
		ValueType:         valueType,
		Value:             req.Value.Negated(),
		TargetType:        targetTypeLineItem,
		TargetSelection:   targetSelectionAll,
		AllocationMethod:  allocationMethodAcross,
		CustomerSelection: customerSelectionAll,
		StartsAt:          startsAt,
		OncePerCustomer:   req.OncePerCustomer,
	}

	if endsAt := strings.TrimSpace(req.EndsAt); endsAt != "" {
		rule.EndsAt = &endsAt
	}

	if req.UsageLimit > 0 {
		limit := req.UsageLimit
		rule.UsageLimit = &limit
	}

	return rule, nil
}
