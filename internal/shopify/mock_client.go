package shopify

import (
	"context"

	"github.com/stretchr/testify/mock"

	"coupon-generator/internal/model"
)

// MockGateway is a testify mock of Gateway for service and handler tests.
type MockGateway struct {
	mock.Mock
}

var _ Gateway = (*MockGateway)(nil)

func (m *MockGateway) CreatePriceRule(ctx context.Context, brand model.Brand, rule model.PriceRule) (model.PriceRule, error) {
	args := m.Called(ctx, brand, rule)
	return args.Get(0).(model.PriceRule), args.Error(1)
}

func (m *MockGateway) ListPriceRules(ctx context.Context, brand model.Brand) ([]model.PriceRule, error) {
	args := m.Called(ctx, brand)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PriceRule), args.Error(1)
}

func (m *MockGateway) DeletePriceRule(ctx context.Context, brand model.Brand, id model.ID) error {
	args := m.Called(ctx, brand, id)
	return args.Error(0)
}

func (m *MockGateway) CreateDiscountCode(ctx context.Context, brand model.Brand, priceRuleID model.ID, code string) (model.DiscountCode, error) {
	args := m.Called(ctx, brand, priceRuleID, code)
	return args.Get(0).(model.DiscountCode), args.Error(1)
}

func (m *MockGateway) ListDiscountCodes(ctx context.Context, brand model.Brand, priceRuleID model.ID) ([]model.DiscountCode, error) {
	args := m.Called(ctx, brand, priceRuleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DiscountCode), args.Error(1)
}

func (m *MockGateway) CreateDiscountCodeBatch(ctx context.Context, brand model.Brand, priceRuleID model.ID, codes []string) (model.BatchChunkResult, error) {
	args := m.Called(ctx, brand, priceRuleID, codes)
	return args.Get(0).(model.BatchChunkResult), args.Error(1)
}

func (m *MockGateway) GetBatchJob(ctx context.Context, brand model.Brand, priceRuleID model.ID, batchID model.ID) (model.BatchJobDetail, error) {
	args := m.Called(ctx, brand, priceRuleID, batchID)
	return args.Get(0).(model.BatchJobDetail), args.Error(1)
}

func (m *MockGateway) ShopInfo(ctx context.Context, brand model.Brand) (model.ShopInfo, error) {
	args := m.Called(ctx, brand)
	return args.Get(0).(model.ShopInfo), args.Error(1)
}
