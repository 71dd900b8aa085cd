package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Domenick1991/priceops/internal/domain"
	"github.com/Domenick1991/priceops/internal/service/pricing"
	"github.com/gin-gonic/gin"
)

type PriceHandler struct {
	service pricing.PricingUseCase
}

type farePriceRequest struct {
	Destination string `json:"destination"`
	TicketType  string `json:"ticketType"`
	FlightDate  string `json:"flightDate"`
	FlightTime  string `json:"flightTime"`
}

type farePriceResponse struct {
	FinalPrice float64 `json:"final_price"`
}

type packagePriceRequest struct {
	PackageID      string   `json:"_id"`
	Price          float64  `json:"price"`
	Destination    string   `json:"destination"`
	Duration       string   `json:"duration"`
	Tags           []string `json:"tags"`
	Bookings       int      `json:"bookings"`
	Visitors       int      `json:"visitors"`
	DynamicPricing bool     `json:"dynamicPricing"`
}

type packagePriceResponse struct {
	OriginalPrice  float64                `json:"original_price"`
	FinalPrice     float64                `json:"finalPrice"`
	PricingFactors *domain.PricingFactors `json:"pricing_factors,omitempty"`
}

func NewPriceHandler(service pricing.PricingUseCase) *PriceHandler {
	return &PriceHandler{service: service}
}

func (h *PriceHandler) Register(router *gin.RouterGroup) {
	router.POST("/get-price", h.getPrice)
	router.POST("/package-price", h.packagePrice)
	router.GET("/price-history", h.history)
}

func (h *PriceHandler) getPrice(c *gin.Context) {
	var req farePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quote, err := h.service.QuoteFare(c.Request.Context(), pricing.FareInput{
		Destination: req.Destination,
		TicketType:  req.TicketType,
		FlightDate:  req.FlightDate,
		FlightTime:  req.FlightTime,
	})
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidFlightDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, farePriceResponse{FinalPrice: quote.FinalPrice})
}

func (h *PriceHandler) packagePrice(c *gin.Context) {
	var req packagePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quote, err := h.service.QuotePackage(c.Request.Context(), pricing.PackageInput{
		PackageID:      req.PackageID,
		BasePrice:      req.Price,
		Destination:    req.Destination,
		Duration:       req.Duration,
		Tags:           req.Tags,
		Bookings:       req.Bookings,
		Visitors:       req.Visitors,
		DynamicPricing: req.DynamicPricing,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, packagePriceResponse{
		OriginalPrice:  quote.OriginalPrice,
		FinalPrice:     quote.FinalPrice,
		PricingFactors: quote.Factors,
	})
}

func (h *PriceHandler) history(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}

	records, err := h.service.History(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}
