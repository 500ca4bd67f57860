package model

// Brand is one configured Shopify store. Secrets never leave the server.
type Brand struct {
	ID            string
	Name          string
	Domain        string
	AdminAPIURL   string
	AccessToken   string
	APIKey        string
	APISecret     string
	GraphQLURL    string
	AllowedOrigin string
	Logo          string
	Color         string
}

// Summary is the client-safe view of a brand.
func (b Brand) Summary() BrandSummary {
	return BrandSummary{
		ID:     b.ID,
		Name:   b.Name,
		Domain: b.Domain,
		Logo:   b.Logo,
		Color:  b.Color,
	}
}

type BrandSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Domain string `json:"domain"`
	Logo   string `json:"logo,omitempty"`
	Color  string `json:"color,omitempty"`
}

type BrandList struct {
	Brands        []BrandSummary `json:"brands"`
	ActiveBrandID string         `json:"activeBrandId"`
}

type ActiveBrand struct {
	ActiveBrandID string `json:"activeBrandId"`
	Name          string `json:"name"`
	Domain        string `json:"domain"`
}

type BrandStatus struct {
	BrandID string   `json:"brand_id"`
	Shop    ShopInfo `json:"shop"`
}
