package shopify

import (
	"context"

	goshopify "github.com/bold-commerce/go-shopify/v4"

	"coupon-generator/internal/model"
	"coupon-generator/pkg/apierror"
)

const shopInfoQuery = `{ shop { name myshopifyDomain currencyCode } }`

// ShopInfo checks a brand's credentials through the GraphQL Admin API.
func (c *Client) ShopInfo(ctx context.Context, brand model.Brand) (model.ShopInfo, error) {
	if brand.GraphQLURL == "" {
		return model.ShopInfo{}, apierror.Validation(model.ErrGraphQLNotConfigured.Error())
	}

	var resp struct {
		Shop model.ShopInfo `json:"shop"`
	}

	err := c.call(ctx, brand, "graphql_shop", func(client *goshopify.Client) error {
		return client.GraphQL.Query(ctx, shopInfoQuery, nil, &resp)
	})
	if err != nil {
		return model.ShopInfo{}, err
	}

	return resp.Shop, nil
}
