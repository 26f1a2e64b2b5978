package update

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"poe-calc/internal/service/calculator"
)

type MockCalculatorStore struct {
	mock.Mock
}

func (m *MockCalculatorStore) UpdateCalculator(ctx context.Context, id int, upd calculator.CalculatorUpdate) error {
	args := m.Called(ctx, id, upd)
	return args.Error(0)
}

func (m *MockCalculatorStore) AddCalculator(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCalculatorStore) RemoveCalculator(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCalculatorStore) MarkAsSold(ctx context.Context, id int, amount float64) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}

func (m *MockCalculatorStore) ResetAllTotals(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCalculatorStore) UpdateExchangeRate(ctx context.Context, rate float64) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockCalculatorStore) UpdateRequestHeader(ctx context.Context, header string) error {
	args := m.Called(ctx, header)
	return args.Error(0)
}

func (m *MockCalculatorStore) UpdateRequestFooter(ctx context.Context, footer string) error {
	args := m.Called(ctx, footer)
	return args.Error(0)
}

func TestUpdateCalculator_Success(t *testing.T) {
	mockStore := new(MockCalculatorStore)
	mockStore.On("UpdateCalculator", mock.Anything, 3, mock.MatchedBy(func(upd calculator.CalculatorUpdate) bool {
		return upd.Label != nil && *upd.Label == "Vivid Watcher" &&
			upd.Price != nil && *upd.Price == 1.4 &&
			upd.TotalQuantity == nil
	})).Return(nil)

	handler := UpdateCalculator(slog.Default(), mockStore)

	body := `{"id": 3, "label": "Vivid Watcher", "price": 1.4}`
	req := httptest.NewRequest(http.MethodPatch, "/api/calculators", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"ok"`)
	mockStore.AssertExpectations(t)
}

func TestUpdateCalculator_MissingID(t *testing.T) {
	mockStore := new(MockCalculatorStore)

	handler := UpdateCalculator(slog.Default(), mockStore)

	req := httptest.NewRequest(http.MethodPatch, "/api/calculators", bytes.NewBufferString(`{"label":"x"}`))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockStore.AssertNotCalled(t, "UpdateCalculator")
}

func TestUpdateCalculator_InvalidJSON(t *testing.T) {
	mockStore := new(MockCalculatorStore)

	handler := UpdateCalculator(slog.Default(), mockStore)

	req := httptest.NewRequest(http.MethodPatch, "/api/calculators", bytes.NewBufferString(`{broken`))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateCalculator_BadCurrency(t *testing.T) {
	mockStore := new(MockCalculatorStore)
	mockStore.On("UpdateCalculator", mock.Anything, 1, mock.Anything).
		Return(calculator.ErrInvalidCurrency)

	handler := UpdateCalculator(slog.Default(), mockStore)

	body := `{"id": 1, "currencyType": "gold"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/calculators", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAddCalculator_LimitReached(t *testing.T) {
	mockStore := new(MockCalculatorStore)
	mockStore.On("AddCalculator", mock.Anything).Return(calculator.ErrCalculatorLimit)

	handler := AddCalculator(slog.Default(), mockStore)

	req := httptest.NewRequest(http.MethodPost, "/api/calculators", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestRemoveCalculator_LastOne(t *testing.T) {
	mockStore := new(MockCalculatorStore)
	mockStore.On("RemoveCalculator", mock.Anything, 1).Return(calculator.ErrLastCalculator)

	handler := RemoveCalculator(slog.Default(), mockStore)

	req := httptest.NewRequest(http.MethodDelete, "/api/calculators", bytes.NewBufferString(`{"id":1}`))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestMarkAsSold_Success(t *testing.T) {
	mockStore := new(MockCalculatorStore)
	mockStore.On("MarkAsSold", mock.Anything, 2, 5.0).Return(nil)

	handler := MarkAsSold(slog.Default(), mockStore)

	req := httptest.NewRequest(http.MethodPost, "/api/calculators/sold", bytes.NewBufferString(`{"id":2,"amount":5}`))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	mockStore.AssertExpectations(t)
}

func TestUpdateExchangeRate_RejectsNonPositive(t *testing.T) {
	mockStore := new(MockCalculatorStore)
	mockStore.On("UpdateExchangeRate", mock.Anything, 0.0).Return(calculator.ErrInvalidRate)

	handler := UpdateExchangeRate(slog.Default(), mockStore)

	req := httptest.NewRequest(http.MethodPut, "/api/exchange-rate", bytes.NewBufferString(`{"exchangeRate":0}`))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateExchangeRate_MissingField(t *testing.T) {
	mockStore := new(MockCalculatorStore)

	handler := UpdateExchangeRate(slog.Default(), mockStore)

	req := httptest.NewRequest(http.MethodPut, "/api/exchange-rate", bytes.NewBufferString(`{}`))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockStore.AssertNotCalled(t, "UpdateExchangeRate")
}

func TestUpdateRequestHeader_AllowsEmptyString(t *testing.T) {
	mockStore := new(MockCalculatorStore)
	mockStore.On("UpdateRequestHeader", mock.Anything, "").Return(nil)

	handler := UpdateRequestHeader(slog.Default(), mockStore)

	req := httptest.NewRequest(http.MethodPut, "/api/request-header", bytes.NewBufferString(`{"requestHeader":""}`))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	mockStore.AssertExpectations(t)
}
