package get_price_quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EquipShare-BookingService/internal/api/handlers"
	"github.com/m04kA/EquipShare-BookingService/internal/domain"
	"github.com/m04kA/EquipShare-BookingService/internal/service/pricing"
	"github.com/m04kA/EquipShare-BookingService/internal/service/pricing/models"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Quote(ctx context.Context, equipmentID int64, req domain.BookingRequest) (*models.PriceQuoteResponse, error) {
	args := m.Called(ctx, equipmentID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PriceQuoteResponse), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/equipment/{equipmentId}/price-quote", h.Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_MultiDayQuote(t *testing.T) {
	start := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC)

	svc := new(mockService)
	svc.On("Quote", mock.Anything, int64(7), mock.MatchedBy(func(req domain.BookingRequest) bool {
		return req.Type == domain.BookingTypeMultiDay && req.Date == nil &&
			req.StartDate != nil && req.StartDate.Equal(start) &&
			req.EndDate != nil && req.EndDate.Equal(end)
	})).Return(&models.PriceQuoteResponse{
		EquipmentID:     7,
		StartDate:       "2025-01-10",
		EndDate:         "2025-01-12",
		Days:            3,
		DailyRate:       "50.00",
		EquipmentCost:   "150.00",
		PlatformCost:    "7.50",
		OwnerReceivable: "150.00",
		TotalPrice:      "157.50",
	}, nil)

	rec := serve(NewHandler(svc, nopLogger{}), "/equipment/7/price-quote?type=multi_day&startDate=2025-01-10&endDate=2025-01-12")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"equipmentId": 7,
		"startDate": "2025-01-10",
		"endDate": "2025-01-12",
		"days": 3,
		"dailyRate": "50.00",
		"equipmentCost": "150.00",
		"platformCost": "7.50",
		"ownerReceivable": "150.00",
		"totalPrice": "157.50"
	}`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestHandler_OneDayQuote(t *testing.T) {
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	svc := new(mockService)
	svc.On("Quote", mock.Anything, int64(7), mock.MatchedBy(func(req domain.BookingRequest) bool {
		return req.Type == domain.BookingTypeOneDay && req.Date != nil && req.Date.Equal(day)
	})).Return(&models.PriceQuoteResponse{EquipmentID: 7, Days: 1, TotalPrice: "52.50"}, nil)

	rec := serve(NewHandler(svc, nopLogger{}), "/equipment/7/price-quote?type=one_day&date=2025-03-01")

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "equipment not found", err: pricing.ErrEquipmentNotFound, code: http.StatusNotFound, message: msgEquipmentNotFound},
		{name: "invalid input", err: fmt.Errorf("%w: start after end", pricing.ErrInvalidInput), code: http.StatusBadRequest, message: msgInvalidPeriod},
		{name: "invalid range", err: pricing.ErrInvalidDateRange, code: http.StatusBadRequest, message: msgInvalidPeriod},
		{name: "internal", err: pricing.ErrInternal, code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			svc.On("Quote", mock.Anything, int64(7), mock.Anything).Return(nil, tt.err)

			rec := serve(NewHandler(svc, nopLogger{}), "/equipment/7/price-quote?type=one_day&date=2025-03-01")

			assert.Equal(t, tt.code, rec.Code)
			if tt.message != "" {
				var body handlers.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.message, body.Message)
			}
		})
	}
}

func TestHandler_BadRequestBeforeService(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{name: "non numeric id", target: "/equipment/abc/price-quote?type=one_day&date=2025-03-01"},
		{name: "zero id", target: "/equipment/0/price-quote?type=one_day&date=2025-03-01"},
		{name: "malformed date", target: "/equipment/7/price-quote?type=one_day&date=01.03.2025"},
		{name: "malformed end date", target: "/equipment/7/price-quote?type=multi_day&startDate=2025-03-01&endDate=2025-02-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)

			rec := serve(NewHandler(svc, nopLogger{}), tt.target)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			svc.AssertNotCalled(t, "Quote", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
