package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodbridge-matching/internal/apperr"
	"foodbridge-matching/internal/domain"
	testlog "foodbridge-matching/internal/testutil"
)

type stubDeliveryUsecase struct {
	assignFn func(ctx context.Context, deliveryID, staffID uuid.UUID) (domain.Delivery, error)
	updateFn func(ctx context.Context, deliveryID uuid.UUID, next domain.DeliveryStatus) (domain.Delivery, error)
}

func (s *stubDeliveryUsecase) Assign(ctx context.Context, deliveryID, staffID uuid.UUID) (domain.Delivery, error) {
	if s.assignFn == nil {
		panic("Assign not expected in this test")
	}
	return s.assignFn(ctx, deliveryID, staffID)
}

func (s *stubDeliveryUsecase) UpdateStatus(ctx context.Context, deliveryID uuid.UUID, next domain.DeliveryStatus) (domain.Delivery, error) {
	if s.updateFn == nil {
		panic("UpdateStatus not expected in this test")
	}
	return s.updateFn(ctx, deliveryID, next)
}

func TestDeliveryHandler_Assign_OK(t *testing.T) {
	t.Parallel()

	deliveryID := uuid.New()
	staffID := uuid.New()

	uc := &stubDeliveryUsecase{
		assignFn: func(_ context.Context, gotDelivery, gotStaff uuid.UUID) (domain.Delivery, error) {
			require.Equal(t, deliveryID, gotDelivery)
			require.Equal(t, staffID, gotStaff)
			return domain.Delivery{
				ID:               deliveryID,
				Status:           domain.DeliveryAssigned,
				LogisticsStaffID: &staffID,
			}, nil
		},
	}

	body := fmt.Sprintf(`{"delivery_id":%q,"staff_id":%q}`, deliveryID, staffID)
	req := httptest.NewRequest(http.MethodPost, "/delivery/assign", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	h := NewDeliveryHandler(testlog.New().Logger(), uc)
	h.Assign(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp deliveryDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, domain.DeliveryAssigned, resp.Status)
	require.NotNil(t, resp.LogisticsStaffID)
	assert.Equal(t, staffID, *resp.LogisticsStaffID)
}

func TestDeliveryHandler_Assign_Conflict(t *testing.T) {
	t.Parallel()

	uc := &stubDeliveryUsecase{
		assignFn: func(context.Context, uuid.UUID, uuid.UUID) (domain.Delivery, error) {
			return domain.Delivery{}, fmt.Errorf("%w: delivery not pending", apperr.ErrConflict)
		},
	}

	body := fmt.Sprintf(`{"delivery_id":%q,"staff_id":%q}`, uuid.New(), uuid.New())
	req := httptest.NewRequest(http.MethodPost, "/delivery/assign", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h := NewDeliveryHandler(testlog.New().Logger(), uc)
	h.Assign(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.JSONEq(t, `{"error": "delivery already assigned"}`, rr.Body.String())
}

func TestDeliveryHandler_Assign_NotFound(t *testing.T) {
	t.Parallel()

	uc := &stubDeliveryUsecase{
		assignFn: func(context.Context, uuid.UUID, uuid.UUID) (domain.Delivery, error) {
			return domain.Delivery{}, fmt.Errorf("%w: delivery", apperr.ErrNotFound)
		},
	}

	body := fmt.Sprintf(`{"delivery_id":%q,"staff_id":%q}`, uuid.New(), uuid.New())
	req := httptest.NewRequest(http.MethodPost, "/delivery/assign", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h := NewDeliveryHandler(testlog.New().Logger(), uc)
	h.Assign(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeliveryHandler_UpdateStatus_Delivered(t *testing.T) {
	t.Parallel()

	deliveryID := uuid.New()
	deliveredAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	uc := &stubDeliveryUsecase{
		updateFn: func(_ context.Context, gotID uuid.UUID, next domain.DeliveryStatus) (domain.Delivery, error) {
			require.Equal(t, deliveryID, gotID)
			require.Equal(t, domain.DeliveryDelivered, next)
			return domain.Delivery{
				ID:          deliveryID,
				Status:      domain.DeliveryDelivered,
				DeliveredAt: &deliveredAt,
			}, nil
		},
	}

	body := fmt.Sprintf(`{"delivery_id":%q,"status":"DELIVERED"}`, deliveryID)
	req := httptest.NewRequest(http.MethodPost, "/delivery/status", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h := NewDeliveryHandler(testlog.New().Logger(), uc)
	h.UpdateStatus(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp deliveryDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, domain.DeliveryDelivered, resp.Status)
	require.NotNil(t, resp.DeliveredAt)
	assert.True(t, deliveredAt.Equal(*resp.DeliveredAt))
}

func TestDeliveryHandler_UpdateStatus_InvalidTransition(t *testing.T) {
	t.Parallel()

	uc := &stubDeliveryUsecase{
		updateFn: func(context.Context, uuid.UUID, domain.DeliveryStatus) (domain.Delivery, error) {
			return domain.Delivery{}, fmt.Errorf("%w: PENDING -> DELIVERED", apperr.ErrConflict)
		},
	}

	body := fmt.Sprintf(`{"delivery_id":%q,"status":"DELIVERED"}`, uuid.New())
	req := httptest.NewRequest(http.MethodPost, "/delivery/status", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h := NewDeliveryHandler(testlog.New().Logger(), uc)
	h.UpdateStatus(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.JSONEq(t, `{"error": "invalid status transition"}`, rr.Body.String())
}

func TestDeliveryHandler_UpdateStatus_UnknownStatus(t *testing.T) {
	t.Parallel()

	uc := &stubDeliveryUsecase{
		updateFn: func(context.Context, uuid.UUID, domain.DeliveryStatus) (domain.Delivery, error) {
			return domain.Delivery{}, apperr.ErrInvalid
		},
	}

	body := fmt.Sprintf(`{"delivery_id":%q,"status":"TELEPORTED"}`, uuid.New())
	req := httptest.NewRequest(http.MethodPost, "/delivery/status", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h := NewDeliveryHandler(testlog.New().Logger(), uc)
	h.UpdateStatus(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
