package shopify

import (
	"context"

	"coupon-generator/internal/model"
)

// Gateway is the slice of the Shopify Admin API the coupon services use.
type Gateway interface {
	CreatePriceRule(ctx context.Context, brand model.Brand, rule model.PriceRule) (model.PriceRule, error)
	ListPriceRules(ctx context.Context, brand model.Brand) ([]model.PriceRule, error)
	DeletePriceRule(ctx context.Context, brand model.Brand, id model.ID) error
	CreateDiscountCode(ctx context.Context, brand model.Brand, priceRuleID model.ID, code string) (model.DiscountCode, error)
	ListDiscountCodes(ctx context.Context, brand model.Brand, priceRuleID model.ID) ([]model.DiscountCode, error)
	CreateDiscountCodeBatch(ctx context.Context, brand model.Brand, priceRuleID model.ID, codes []string) (model.BatchChunkResult, error)
	GetBatchJob(ctx context.Context, brand model.Brand, priceRuleID model.ID, batchID model.ID) (model.BatchJobDetail, error)
	ShopInfo(ctx context.Context, brand model.Brand) (model.ShopInfo, error)
}

var _ Gateway = (*Client)(nil)
