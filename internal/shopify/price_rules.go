package shopify

import (
	"context"
	"fmt"

	goshopify "github.com/bold-commerce/go-shopify/v4"

	"coupon-generator/internal/model"
)

const priceRuleListLimit = 50

type listOptions struct {
	Limit int `url:"limit,omitempty"`
}

func (c *Client) CreatePriceRule(ctx context.Context, brand model.Brand, rule model.PriceRule) (model.PriceRule, error) {
	payload := struct {
		PriceRule model.PriceRule `json:"price_rule"`
	}{PriceRule: rule}

	var resp struct {
		PriceRule model.PriceRule `json:"price_rule"`
	}

	err := c.call(ctx, brand, "create_price_rule", func(client *goshopify.Client) error {
		return client.Post(ctx, "price_rules.json", payload, &resp)
	})
	if err != nil {
		return model.PriceRule{}, err
	}

	return resp.PriceRule, nil
}

func (c *Client) ListPriceRules(ctx context.Context, brand model.Brand) ([]model.PriceRule, error) {
	var resp struct {
		PriceRules []model.PriceRule `json:"price_rules"`
	}

	err := c.call(ctx, brand, "list_price_rules", func(client *goshopify.Client) error {
		return client.Get(ctx, "price_rules.json", &resp, listOptions{Limit: priceRuleListLimit})
	})
	if err != nil {
		return nil, err
	}

	if resp.PriceRules == nil {
		resp.PriceRules = []model.PriceRule{}
	}
	return resp.PriceRules, nil
}

func (c *Client) DeletePriceRule(ctx context.Context, brand model.Brand, id model.ID) error {
	return c.call(ctx, brand, "delete_price_rule", func(client *goshopify.Client) error {
		return client.Delete(ctx, fmt.Sprintf("price_rules/%d.json", id))
	})
}
