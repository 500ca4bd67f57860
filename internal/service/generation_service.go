package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"coupon-generator/internal/model"
	"coupon-generator/internal/util"
	"coupon-generator/pkg/apierror"
)

const defaultBatchCount = 10

// GenerationService runs the full workflow behind the generate form: create
// a price rule, then one code or a batch of codes under it.
type GenerationService struct {
	priceRules *PriceRuleService
	discounts  *DiscountService
	now        func() time.Time
}

func NewGenerationService(priceRules *PriceRuleService, discounts *DiscountService) *GenerationService {
	return &GenerationService{priceRules: priceRules, discounts: discounts, now: time.Now}
}

// Preview draws candidate codes without calling Shopify. A nil prefix means
// the default prefix.
func (s *GenerationService) Preview(prefix *string, length int, count int) (model.CodePreview, error) {
	cleanPrefix, err := resolvePrefix(prefix)
	if err != nil {
		return model.CodePreview{}, err
	}

	length, err = resolveCodeLength(length)
	if err != nil {
		return model.CodePreview{}, err
	}

	if count == 0 {
		count = 1
	}
	if count < 1 || count > util.MaxBatchCount {
		return model.CodePreview{}, apierror.Validation(fmt.Sprintf("count must be between 1 and %d", util.MaxBatchCount))
	}

	return model.CodePreview{
		Codes:     util.GenerateBatchCodes(cleanPrefix, length, count),
		Requested: count,
	}, nil
}

func (s *GenerationService) Generate(ctx context.Context, brand model.Brand, req model.GenerateRequest) (model.GenerateResult, error) {
	mode := strings.ToLower(strings.TrimSpace(req.Mode))
	if mode == "" {
		mode = model.ModeSingle
	}
	if mode != model.ModeSingle && mode != model.ModeBatch {
		return model.GenerateResult{}, apierror.Validation("mode must be single or batch")
	}

	valueType := strings.TrimSpace(req.ValueType)
	if valueType != model.ValueTypePercentage && valueType != model.ValueTypeFixedAmount {
		return model.GenerateResult{}, apierror.Validation("value_type must be percentage or fixed_amount")
	}

	if req.Value == nil || *req.Value <= 0 {
		return model.GenerateResult{}, apierror.Validation("Please enter a valid discount value")
	}
	if valueType == model.ValueTypePercentage && *req.Value > 100 {
		return model.GenerateResult{}, apierror.Validation("Percentage discount cannot exceed 100%")
	}

	prefix, err := resolvePrefix(req.Prefix)
	if err != nil {
		return model.GenerateResult{}, err
	}

	length, err := resolveCodeLength(req.CodeLength)
	if err != nil {
		return model.GenerateResult{}, err
	}

	count := 1
	customCode := ""
	if mode == model.ModeBatch {
		count = req.Count
		if count == 0 {
			count = defaultBatchCount
		}
		if count < 1 || count > util.MaxBatchCount {
			return model.GenerateResult{}, apierror.Validation(fmt.Sprintf("count must be between 1 and %d", util.MaxBatchCount))
		}
	} else if strings.TrimSpace(req.Code) != "" {
		customCode, err = util.SanitizeDiscountCode(req.Code)
		if err != nil {
			return model.GenerateResult{}, err
		}
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = defaultTitle(valueType, float64(*req.Value), mode, count)
	}

	startsAt := strings.TrimSpace(req.StartsAt)
	if startsAt == "" {
		startsAt = s.now().UTC().Format(time.RFC3339)
	}

	rule, err := s.priceRules.Create(ctx, brand, model.PriceRuleRequest{
		Title:           title,
		ValueType:       valueType,
		Value:           req.Value,
		StartsAt:        startsAt,
		EndsAt:          req.EndsAt,
		UsageLimit:      req.UsageLimit,
		OncePerCustomer: req.OncePerCustomer,
	})
	if err != nil {
		return model.GenerateResult{}, err
	}

	result := model.GenerateResult{Mode: mode, PriceRule: rule}

	if mode == model.ModeSingle {
		code := customCode
		if code == "" {
			code = util.GenerateCode(prefix, length)
		}

		outcome := model.CodeOutcome{Code: code, Status: model.CodeStatusCreated}
		if _, createErr := s.discounts.Create(ctx, brand, model.DiscountCodeRequest{PriceRuleID: rule.ID, Code: code}); createErr != nil {
			outcome.Status = model.CodeStatusFailed
			outcome.Error = upstreamMessage(createErr)
		}
		result.Codes = []model.CodeOutcome{outcome}
		return result, nil
	}

	codes := util.GenerateBatchCodes(prefix, length, count)
	batch, failedChunks := s.discounts.createChunks(ctx, brand, rule.ID, codes)

	result.Codes = make([]model.CodeOutcome, 0, len(codes))
	for i, code := range codes {
		outcome := model.CodeOutcome{Code: code, Status: model.CodeStatusCreated}
		if message, failed := failedChunks[i/s.discounts.chunkSize]; failed {
			outcome.Status = model.CodeStatusFailed
			outcome.Error = message
		}
		result.Codes = append(result.Codes, outcome)
	}
	result.Batch = &batch

	return result, nil
}

func resolvePrefix(prefix *string) (string, error) {
	if prefix == nil {
		return util.DefaultPrefix, nil
	}
	return util.SanitizePrefix(*prefix)
}

func resolveCodeLength(length int) (int, error) {
	if length == 0 {
		return util.DefaultCodeLength, nil
	}
	if length < util.MinCodeLength || length > util.MaxCodeLength {
		return 0, apierror.Validation(fmt.Sprintf("code_length must be between %d and %d", util.MinCodeLength, util.MaxCodeLength))
	}
	return length, nil
}

// defaultTitle mirrors the form's auto title, e.g. "10% Off — Single" or
// "$5 Off — Batch (25)".
func defaultTitle(valueType string, value float64, mode string, count int) string {
	amount := strconv.FormatFloat(value, 'f', -1, 64)
	if valueType == model.ValueTypePercentage {
		amount += "%"
	} else {
		amount = "$" + amount
	}

	modeLabel := "Single"
	if mode == model.ModeBatch {
		modeLabel = fmt.Sprintf("Batch (%d)", count)
	}

	return fmt.Sprintf("%s Off — %s", amount, modeLabel)
}
