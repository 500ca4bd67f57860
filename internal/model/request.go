package model

import "strings"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SwitchBrandRequest struct {
	BrandID string `json:"brandId"`
}

type HashResult struct {
	Password  string `json:"password"`
	Hash      string `json:"hash"`
	Scheme    string `json:"scheme"`
	EnvFormat string `json:"env_format"`
}

type PriceRuleRequest struct {
	Title           string  `json:"title"`
	ValueType       string  `json:"value_type"`
	Value           *Amount `json:"value"`
	StartsAt        string  `json:"starts_at"`
	EndsAt          string  `json:"ends_at,omitempty"`
	UsageLimit      int     `json:"usage_limit,omitempty"`
	OncePerCustomer *bool   `json:"once_per_customer,omitempty"`
}

type DiscountCodeRequest struct {
	PriceRuleID ID     `json:"price_rule_id"`
	Code        string `json:"code"`
}

type BatchRequest struct {
	PriceRuleID ID       `json:"price_rule_id"`
	Codes       []string `json:"codes"`
}

type BatchResult struct {
	Created        []DiscountCode `json:"created"`
	TotalRequested int            `json:"total_requested"`
	TotalCreated   int            `json:"total_created"`
	Errors         []string       `json:"errors,omitempty"`
	Jobs           []BatchJob     `json:"jobs,omitempty"`
}

func (r BatchResult) Failed() bool {
	return len(r.Errors) > 0
}

const (
	ModeSingle = "single"
	ModeBatch  = "batch"
)

// GenerateRequest drives the whole create-rule-then-codes workflow.
type GenerateRequest struct {
	Mode            string  `json:"mode"`
	Title           string  `json:"title,omitempty"`
	ValueType       string  `json:"value_type"`
	Value           *Amount `json:"value"`
	StartsAt        string  `json:"starts_at,omitempty"`
	EndsAt          string  `json:"ends_at,omitempty"`
	UsageLimit      int     `json:"usage_limit,omitempty"`
	OncePerCustomer *bool   `json:"once_per_customer,omitempty"`
	Prefix          *string `json:"prefix,omitempty"`
	CodeLength      int     `json:"code_length,omitempty"`
	Count           int     `json:"count,omitempty"`
	Code            string  `json:"code,omitempty"`
}

const (
	CodeStatusCreated = "created"
	CodeStatusFailed  = "failed"
)

type CodeOutcome struct {
	Code   string `json:"code"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type GenerateResult struct {
	Mode      string        `json:"mode"`
	PriceRule PriceRule     `json:"price_rule"`
	Codes     []CodeOutcome `json:"codes"`
	Batch     *BatchResult  `json:"batch,omitempty"`
}

type CodePreview struct {
	Codes     []string `json:"codes"`
	Requested int      `json:"requested"`
}

// FailureMessage summarizes what went wrong creating codes. It is empty when
// every code was created.
func (r GenerateResult) FailureMessage() string {
	if r.Batch != nil && r.Batch.Failed() {
		return strings.Join(r.Batch.Errors, "; ")
	}

	for _, outcome := range r.Codes {
		if outcome.Status == CodeStatusFailed {
			return outcome.Error
		}
	}

	return ""
}
