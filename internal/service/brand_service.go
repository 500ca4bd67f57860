package service

import (
	"context"
	"fmt"
	"strings"

	"coupon-generator/internal/model"
	"coupon-generator/internal/shopify"
	"coupon-generator/pkg/apierror"
)

// BrandService resolves the brand a request acts on. The set of brands is
// fixed at startup.
type BrandService struct {
	brands  []model.Brand
	gateway shopify.Gateway
}

func NewBrandService(brands []model.Brand, gateway shopify.Gateway) *BrandService {
	return &BrandService{brands: brands, gateway: gateway}
}

func (s *BrandService) Brands() []model.Brand {
	return s.brands
}

// Active returns the brand whose id is activeID, falling back to the first
// configured brand when the id is empty or unknown.
func (s *BrandService) Active(activeID string) (model.Brand, error) {
	if len(s.brands) == 0 {
		return model.Brand{}, apierror.Internal("No brands configured. Set BRAND_COUNT and BRAND_N_* env vars.", model.ErrNoBrands)
	}

	if brand, ok := s.find(activeID); ok {
		return brand, nil
	}

	return s.brands[0], nil
}

func (s *BrandService) List(activeID string) (model.BrandList, error) {
	active, err := s.Active(activeID)
	if err != nil {
		return model.BrandList{}, err
	}

	summaries := make([]model.BrandSummary, 0, len(s.brands))
	for _, brand := range s.brands {
		summaries = append(summaries, brand.Summary())
	}

	return model.BrandList{Brands: summaries, ActiveBrandID: active.ID}, nil
}

// Switch validates a brand id before the caller stores it in the client's
// cookie.
func (s *BrandService) Switch(brandID string) (model.ActiveBrand, error) {
	brandID = strings.TrimSpace(brandID)
	if brandID == "" {
		return model.ActiveBrand{}, apierror.Validation("brandId is required")
	}

	brand, ok := s.find(brandID)
	if !ok {
		e := apierror.NotFound(fmt.Sprintf("Brand %q not found", brandID))
		e.Err = model.ErrBrandNotFound
		return model.ActiveBrand{}, e
	}

	return model.ActiveBrand{ActiveBrandID: brand.ID, Name: brand.Name, Domain: brand.Domain}, nil
}

// Status checks the active brand's credentials against the GraphQL Admin API.
func (s *BrandService) Status(ctx context.Context, activeID string) (model.BrandStatus, error) {
	brand, err := s.Active(activeID)
	if err != nil {
		return model.BrandStatus{}, err
	}

	shop, err := s.gateway.ShopInfo(ctx, brand)
	if err != nil {
		return model.BrandStatus{}, err
	}

	return model.BrandStatus{BrandID: brand.ID, Shop: shop}, nil
}

func (s *BrandService) find(id string) (model.Brand, bool) {
	if id == "" {
		return model.Brand{}, false
	}

	for _, brand := range s.brands {
		if brand.ID == id {
			return brand, true
		}
	}

	return model.Brand{}, false
}
