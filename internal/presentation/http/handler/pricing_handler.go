package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Ayy-man/hottecouture-v2-sub001/internal/application/service"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/pricing"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/presentation/http/dto/request"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/presentation/http/dto/response"
)

// PricingQuoter is implemented by service.OrderService
type PricingQuoter interface {
	Quote(input service.QuoteInput) (pricing.Calculation, error)
	QuoteBatch(inputs []service.QuoteInput) ([]pricing.Calculation, error)
	PricingConfig() (pricing.Config, []string)
}

// PricingHandler serves stateless pricing previews
type PricingHandler struct {
	quoter PricingQuoter
}

// NewPricingHandler creates a new pricing handler
func NewPricingHandler(quoter PricingQuoter) *PricingHandler {
	return &PricingHandler{quoter: quoter}
}

// Quote prices one set of lines
func (h *PricingHandler) Quote(c *gin.Context) {
	var req request.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Invalid request body")
		return
	}

	calc, err := h.quoter.Quote(service.QuoteInput{Items: req.Items, IsRush: req.IsRush})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote computed successfully", calc)
}

// QuoteBatch prices several orders at once
func (h *PricingHandler) QuoteBatch(c *gin.Context) {
	var req request.BatchQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Invalid request body")
		return
	}

	inputs := make([]service.QuoteInput, len(req.Orders))
	for i, o := range req.Orders {
		inputs[i] = service.QuoteInput{Items: o.Items, IsRush: o.IsRush}
	}

	calcs, err := h.quoter.QuoteBatch(inputs)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotes computed successfully", calcs)
}

type pricingConfigResponse struct {
	SmallRushFeeCents  int64    `json:"small_rush_fee_cents"`
	LargeRushFeeCents  int64    `json:"large_rush_fee_cents"`
	RushThresholdCents int64    `json:"rush_threshold_cents"`
	TPSRateBps         string   `json:"tps_rate_bps"`
	TVQRateBps         string   `json:"tvq_rate_bps"`
	Valid              bool     `json:"valid"`
	Errors             []string `json:"errors,omitempty"`
}

// Config returns the active pricing configuration
func (h *PricingHandler) Config(c *gin.Context) {
	cfg, problems := h.quoter.PricingConfig()

	response.OK(c, "Pricing configuration retrieved successfully", pricingConfigResponse{
		SmallRushFeeCents:  cfg.SmallRushFeeCents,
		LargeRushFeeCents:  cfg.LargeRushFeeCents,
		RushThresholdCents: cfg.Threshold(),
		TPSRateBps:         cfg.TPSRateBps.String(),
		TVQRateBps:         cfg.TVQRateBps.String(),
		Valid:              len(problems) == 0,
		Errors:             problems,
	})
}
