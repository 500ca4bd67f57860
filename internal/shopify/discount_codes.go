package shopify

import (
	"context"
	"fmt"

	goshopify "github.com/bold-commerce/go-shopify/v4"

	"coupon-generator/internal/model"
)

// MaxBatchSize is the most codes Shopify accepts in one batch call.
const MaxBatchSize = 100

type codeOnly struct {
	Code string `json:"code"`
}

func (c *Client) CreateDiscountCode(ctx context.Context, brand model.Brand, priceRuleID model.ID, code string) (model.DiscountCode, error) {
	payload := struct {
		DiscountCode codeOnly `json:"discount_code"`
	}{DiscountCode: codeOnly{Code: code}}

	var resp struct {
		DiscountCode model.DiscountCode `json:"discount_code"`
	}

	err := c.call(ctx, brand, "create_discount_code", func(client *goshopify.Client) error {
		return client.Post(ctx, fmt.Sprintf("price_rules/%d/discount_codes.json", priceRuleID), payload, &resp)
	})
	if err != nil {
		return model.DiscountCode{}, err
	}

	return resp.DiscountCode, nil
}

func (c *Client) ListDiscountCodes(ctx context.Context, brand model.Brand, priceRuleID model.ID) ([]model.DiscountCode, error) {
	var resp struct {
		DiscountCodes []model.DiscountCode `json:"discount_codes"`
	}

	err := c.call(ctx, brand, "list_discount_codes", func(client *goshopify.Client) error {
		return client.Get(ctx, fmt.Sprintf("price_rules/%d/discount_codes.json", priceRuleID), &resp, nil)
	})
	if err != nil {
		return nil, err
	}

	if resp.DiscountCodes == nil {
		resp.DiscountCodes = []model.DiscountCode{}
	}
	return resp.DiscountCodes, nil
}

// CreateDiscountCodeBatch submits at most MaxBatchSize codes in one call.
// Chunking larger sets is the caller's job.
func (c *Client) CreateDiscountCodeBatch(ctx context.Context, brand model.Brand, priceRuleID model.ID, codes []string) (model.BatchChunkResult, error) {
	if len(codes) > MaxBatchSize {
		return model.BatchChunkResult{}, fmt.Errorf("batch of %d codes exceeds the limit of %d", len(codes), MaxBatchSize)
	}

	items := make([]codeOnly, 0, len(codes))
	for _, code := range codes {
		items = append(items, codeOnly{Code: code})
	}
	payload := struct {
		DiscountCodes []codeOnly `json:"discount_codes"`
	}{DiscountCodes: items}

	var resp struct {
		DiscountCodes []model.DiscountCode `json:"discount_codes"`
		Job           *model.BatchJob      `json:"discount_code_creation"`
	}

	err := c.call(ctx, brand, "create_discount_code_batch", func(client *goshopify.Client) error {
		return client.Post(ctx, fmt.Sprintf("price_rules/%d/batch.json", priceRuleID), payload, &resp)
	})
	if err != nil {
		return model.BatchChunkResult{}, err
	}

	return model.BatchChunkResult{Codes: resp.DiscountCodes, Job: resp.Job}, nil
}

func (c *Client) GetBatchJob(ctx context.Context, brand model.Brand, priceRuleID model.ID, batchID model.ID) (model.BatchJobDetail, error) {
	var resp model.BatchJobDetail

	err := c.call(ctx, brand, "get_batch_job", func(client *goshopify.Client) error {
		return client.Get(ctx, fmt.Sprintf("price_rules/%d/batch/%d.json", priceRuleID, batchID), &resp, nil)
	})
	if err != nil {
		return model.BatchJobDetail{}, err
	}

	return resp, nil
}
