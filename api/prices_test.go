package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/priceops/internal/domain"
	"github.com/Domenick1991/priceops/internal/service/pricing"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPricingUseCase is a mock implementation of pricing.PricingUseCase
type MockPricingUseCase struct {
	mock.Mock
}

func (m *MockPricingUseCase) QuoteFare(ctx context.Context, input pricing.FareInput) (*pricing.FareQuote, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.FareQuote), args.Error(1)
}

func (m *MockPricingUseCase) QuotePackage(ctx context.Context, input pricing.PackageInput) (*pricing.PackageQuote, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.PackageQuote), args.Error(1)
}

func (m *MockPricingUseCase) History(ctx context.Context, limit int) ([]domain.QuoteRecord, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.QuoteRecord), args.Error(1)
}

func TestPriceHandler_getPrice(t *testing.T) {
	mockService := &MockPricingUseCase{}
	handler := NewPriceHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	input := pricing.FareInput{
		Destination: "Goa",
		TicketType:  "business",
		FlightDate:  "2024-06-15",
		FlightTime:  "evening",
	}
	body, _ := json.Marshal(farePriceRequest{
		Destination: input.Destination,
		TicketType:  input.TicketType,
		FlightDate:  input.FlightDate,
		FlightTime:  input.FlightTime,
	})
	c.Request = httptest.NewRequest("POST", "/get-price", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("QuoteFare", c.Request.Context(), input).Return(&pricing.FareQuote{FinalPrice: 2380.50}, nil)

	handler.getPrice(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response farePriceResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, 2380.50, response.FinalPrice)

	mockService.AssertExpectations(t)
}

func TestPriceHandler_getPrice_InvalidDate(t *testing.T) {
	mockService := &MockPricingUseCase{}
	handler := NewPriceHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(farePriceRequest{
		Destination: "Goa",
		TicketType:  "economy",
		FlightDate:  "15-06-2024",
		FlightTime:  "morning",
	})
	c.Request = httptest.NewRequest("POST", "/get-price", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("QuoteFare", c.Request.Context(), mock.Anything).Return(nil, pricing.ErrInvalidFlightDate)

	handler.getPrice(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "invalid date format", response["error"])

	mockService.AssertExpectations(t)
}

func TestPriceHandler_getPrice_InternalError(t *testing.T) {
	mockService := &MockPricingUseCase{}
	handler := NewPriceHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(farePriceRequest{
		Destination: "Goa",
		TicketType:  "economy",
		FlightDate:  "2024-06-15",
		FlightTime:  "morning",
	})
	c.Request = httptest.NewRequest("POST", "/get-price", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("QuoteFare", c.Request.Context(), mock.Anything).Return(nil, errors.New("pricing backend unavailable"))

	handler.getPrice(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	mockService.AssertExpectations(t)
}

func TestPriceHandler_packagePrice(t *testing.T) {
	mockService := &MockPricingUseCase{}
	handler := NewPriceHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(packagePriceRequest{
		PackageID:      "pkg-42",
		Price:          5000,
		Destination:    "Manali",
		Duration:       "10 days",
		Tags:           []string{"hill station"},
		Bookings:       12,
		Visitors:       100,
		DynamicPricing: true,
	})
	c.Request = httptest.NewRequest("POST", "/package-price", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	factors := &domain.PricingFactors{Demand: 1.25, Destination: 1.08, Duration: 0.95, Tag: 1.10}
	mockService.On("QuotePackage", c.Request.Context(), pricing.PackageInput{
		PackageID:      "pkg-42",
		BasePrice:      5000,
		Destination:    "Manali",
		Duration:       "10 days",
		Tags:           []string{"hill station"},
		Bookings:       12,
		Visitors:       100,
		DynamicPricing: true,
	}).Return(&pricing.PackageQuote{
		OriginalPrice:  5000,
		FinalPrice:     7053.75,
		Factors:        factors,
		ConversionRate: 0.12,
	}, nil)

	handler.packagePrice(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response packagePriceResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, 5000.0, response.OriginalPrice)
	assert.Equal(t, 7053.75, response.FinalPrice)
	assert.NotNil(t, response.PricingFactors)
	assert.Equal(t, 1.25, response.PricingFactors.Demand)

	mockService.AssertExpectations(t)
}

func TestPriceHandler_packagePrice_Passthrough(t *testing.T) {
	mockService := &MockPricingUseCase{}
	handler := NewPriceHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(packagePriceRequest{
		Price:       5000,
		Destination: "Manali",
		Duration:    "10 days",
	})
	c.Request = httptest.NewRequest("POST", "/package-price", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("QuotePackage", c.Request.Context(), mock.Anything).Return(&pricing.PackageQuote{
		OriginalPrice: 5000,
		FinalPrice:    5000,
	}, nil)

	handler.packagePrice(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var raw map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &raw)
	assert.NoError(t, err)
	assert.Equal(t, 5000.0, raw["original_price"])
	assert.Equal(t, 5000.0, raw["finalPrice"])
	assert.NotContains(t, raw, "pricing_factors")

	mockService.AssertExpectations(t)
}

func TestPriceHandler_packagePrice_InternalError(t *testing.T) {
	mockService := &MockPricingUseCase{}
	handler := NewPriceHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(packagePriceRequest{
		Price:          5000,
		Destination:    "Manali",
		Duration:       "10 days",
		DynamicPricing: true,
	})
	c.Request = httptest.NewRequest("POST", "/package-price", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("QuotePackage", c.Request.Context(), mock.Anything).Return(nil, errors.New("pricing backend unavailable"))

	handler.packagePrice(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	mockService.AssertExpectations(t)
}

func TestPriceHandler_history(t *testing.T) {
	mockService := &MockPricingUseCase{}
	handler := NewPriceHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/price-history?limit=5", nil)

	records := []domain.QuoteRecord{
		{ID: "q1", Kind: domain.QuoteKindFare, Destination: "goa", FinalPrice: 2380.50},
	}
	mockService.On("History", c.Request.Context(), 5).Return(records, nil)

	handler.history(c)

	assert.Equal(t, http.StatusOK, w.Code)

	mockService.AssertExpectations(t)
}
