package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"coupon-generator/internal/metrics"
	"coupon-generator/internal/model"
	"coupon-generator/internal/shopify"
	"coupon-generator/pkg/apierror"
)

type DiscountService struct {
	gateway   shopify.Gateway
	metrics   *metrics.Metrics
	chunkSize int
}

func NewDiscountService(gateway shopify.Gateway, m *metrics.Metrics) *DiscountService {
	return &DiscountService{gateway: gateway, metrics: m, chunkSize: shopify.MaxBatchSize}
}

func (s *DiscountService) Create(ctx context.Context, brand model.Brand, req model.DiscountCodeRequest) (model.DiscountCode, error) {
	code := strings.TrimSpace(req.Code)
	if req.PriceRuleID <= 0 || code == "" {
		return model.DiscountCode{}, apierror.Validation("Missing required fields: price_rule_id, code")
	}

	created, err := s.gateway.CreateDiscountCode(ctx, brand, req.PriceRuleID, code)
	if err != nil {
		return model.DiscountCode{}, err
	}

	s.metrics.CodesCreated(brand.ID, 1)
	return created, nil
}

func (s *DiscountService) List(ctx context.Context, brand model.Brand, rawPriceRuleID string) ([]model.DiscountCode, error) {
	if strings.TrimSpace(rawPriceRuleID) == "" {
		return nil, apierror.Validation("price_rule_id is required")
	}

	id, err := model.ParseID(rawPriceRuleID)
	if err != nil {
		return nil, apierror.Validation("price_rule_id must be a positive integer")
	}

	return s.gateway.ListDiscountCodes(ctx, brand, id)
}

// CreateBatch creates codes in chunks of at most 100, one upstream call at a
// time. A failed chunk does not stop the ones after it.
func (s *DiscountService) CreateBatch(ctx context.Context, brand model.Brand, req model.BatchRequest) (model.BatchResult, error) {
	if req.PriceRuleID <= 0 || len(req.Codes) == 0 {
		return model.BatchResult{}, apierror.Validation("Missing required fields: price_rule_id, codes (array of strings)")
	}

	result, _ := s.createChunks(ctx, brand, req.PriceRuleID, req.Codes)
	return result, nil
}

// BatchJob looks up the asynchronous creation job Shopify returned for a batch.
func (s *DiscountService) BatchJob(ctx context.Context, brand model.Brand, rawPriceRuleID string, rawBatchID string) (model.BatchJobDetail, error) {
	if strings.TrimSpace(rawPriceRuleID) == "" || strings.TrimSpace(rawBatchID) == "" {
		return model.BatchJobDetail{}, apierror.Validation("price_rule_id and batch_id are required")
	}

	priceRuleID, err := model.ParseID(rawPriceRuleID)
	if err != nil {
		return model.BatchJobDetail{}, apierror.Validation("price_rule_id must be a positive integer")
	}

	batchID, err := model.ParseID(rawBatchID)
	if err != nil {
		return model.BatchJobDetail{}, apierror.Validation("batch_id must be a positive integer")
	}

	return s.gateway.GetBatchJob(ctx, brand, priceRuleID, batchID)
}

// createChunks returns the accumulated result together with the error message
// of every failed chunk, keyed by chunk index.
func (s *DiscountService) createChunks(ctx context.Context, brand model.Brand, priceRuleID model.ID, codes []string) (model.BatchResult, map[int]string) {
	result := model.BatchResult{
		Created:        []model.DiscountCode{},
		TotalRequested: len(codes),
	}
	failed := map[int]string{}

	for start, chunk := 0, 0; start < len(codes); start, chunk = start+s.chunkSize, chunk+1 {
		end := min(start+s.chunkSize, len(codes))

		res, err := s.gateway.CreateDiscountCodeBatch(ctx, brand, priceRuleID, codes[start:end])
		if err != nil {
			message := upstreamMessage(err)
			failed[chunk] = message
			result.Errors = append(result.Errors, fmt.Sprintf("Batch %d: %s", chunk+1, message))
			slog.WarnContext(ctx, "discount code chunk failed",
				"brand_id", brand.ID,
				"price_rule_id", priceRuleID,
				"chunk", chunk+1,
				"size", end-start,
				"error", message,
			)
			continue
		}

		result.Created = append(result.Created, res.Codes...)
		created := len(res.Codes)
		if res.Job != nil {
			result.Jobs = append(result.Jobs, *res.Job)
			if created == 0 {
				created = res.Job.CodesCount
			}
		}
		result.TotalCreated += created
	}

	s.metrics.CodesCreated(brand.ID, result.TotalCreated)
	return result, failed
}

func upstreamMessage(err error) string {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if err == nil {
		return "Batch failed"
	}
	return err.Error()
}
