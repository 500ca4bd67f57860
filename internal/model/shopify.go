package model

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	ValueTypePercentage  = "percentage"
	ValueTypeFixedAmount = "fixed_amount"
)

// ID is a Shopify resource id. Clients send it either as a JSON number or a
// numeric string.
type ID int64

func ParseID(raw string) (ID, error) {
	raw = strings.TrimSpace(raw)
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return ID(v), nil
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

func (id *ID) UnmarshalJSON(data []byte) error {
	raw := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	if raw == "" || raw == "null" {
		*id = 0
		return nil
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", raw)
	}

	*id = ID(v)
	return nil
}

// Amount is a discount magnitude. Like ID it accepts numbers and numeric strings.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	if raw == "" || raw == "null" {
		*a = 0
		return nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("invalid amount %q", raw)
	}

	*a = Amount(v)
	return nil
}

// Negated renders the amount the way Shopify expects a discount: "-" followed
// by the absolute value.
func (a Amount) Negated() string {
	return "-" + strconv.FormatFloat(math.Abs(float64(a)), 'f', -1, 64)
}

type PriceRule struct {
	ID                ID      `json:"id,omitempty"`
	Title             string  `json:"title"`
	ValueType         string  `json:"value_type"`
	Value             string  `json:"value"`
	TargetType        string  `json:"target_type"`
	TargetSelection   string  `json:"target_selection"`
	AllocationMethod  string  `json:"allocation_method"`
	CustomerSelection string  `json:"customer_selection"`
	StartsAt          string  `json:"starts_at"`
	EndsAt            *string `json:"ends_at,omitempty"`
	UsageLimit        *int    `json:"usage_limit,omitempty"`
	OncePerCustomer   *bool   `json:"once_per_customer,omitempty"`
	CreatedAt         string  `json:"created_at,omitempty"`
	UpdatedAt         string  `json:"updated_at,omitempty"`
}

type DiscountCode struct {
	ID          ID             `json:"id,omitempty"`
	PriceRuleID ID             `json:"price_rule_id,omitempty"`
	Code        string         `json:"code"`
	UsageCount  int            `json:"usage_count,omitempty"`
	Errors      map[string]any `json:"errors,omitempty"`
	CreatedAt   string         `json:"created_at,omitempty"`
	UpdatedAt   string         `json:"updated_at,omitempty"`
}

// BatchJob is Shopify's asynchronous discount_code_creation record.
type BatchJob struct {
	ID            ID     `json:"id"`
	PriceRuleID   ID     `json:"price_rule_id"`
	Status        string `json:"status"`
	CodesCount    int    `json:"codes_count"`
	ImportedCount int    `json:"imported_count"`
	FailedCount   int    `json:"failed_count"`
	StartedAt     string `json:"started_at,omitempty"`
	CompletedAt   string `json:"completed_at,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}

type BatchJobDetail struct {
	Job   BatchJob       `json:"discount_code_creation"`
	Codes []DiscountCode `json:"discount_codes,omitempty"`
}

// BatchChunkResult is what one upstream batch call returned. Either field may
// be empty depending on how the store answers.
type BatchChunkResult struct {
	Codes []DiscountCode
	Job   *BatchJob
}

type ShopInfo struct {
	Name            string `json:"name"`
	MyshopifyDomain string `json:"myshopifyDomain"`
	CurrencyCode    string `json:"currencyCode"`
}
