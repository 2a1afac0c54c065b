package earn

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/dignilife/walletcore/internal/bonus"
	"github.com/dignilife/walletcore/internal/dto"
	"github.com/dignilife/walletcore/internal/service/bonusservice"
	"github.com/dignilife/walletcore/internal/service/earnservice"
	"github.com/dignilife/walletcore/pkg/auth"
)

func NewMock(t *testing.T) (*EarnHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func authCtx() context.Context {
	return context.WithValue(context.Background(), auth.UserIDKey, 1)
}

func TestCommitHandler(t *testing.T) {
	handler, service := NewMock(t)

	committed := &earnservice.CommitResult{
		EntryID:    42,
		Applied:    true,
		Amount:     d("4.00"),
		NewBalance: d("129.40"),
		Bonus: &bonusservice.ApplyResult{
			Event:        bonus.TriggerEarnCommit,
			GrantedTotal: d("0.12"),
			Lines: []bonusservice.AppliedLine{
				{RuleName: "earn_commit_pct", Amount: d("0.12"), EntryID: 43, Applied: true},
			},
		},
	}

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful commit with bonus",
			body: `{"source_id":"task-501","amount":"4.00"}`,
			prepareMock: func() {
				service.EXPECT().Commit(authCtx(), 1, d("4.00"), "task-501").Return(committed, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Invalid request body",
			body:         `{invalid`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Missing source id",
			body:         `{"amount":"4.00"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Malformed amount",
			body:         `{"source_id":"task-501","amount":"four"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Non-positive amount",
			body: `{"source_id":"task-501","amount":"-1.00"}`,
			prepareMock: func() {
				service.EXPECT().Commit(authCtx(), 1, d("-1.00"), "task-501").Return(nil, earnservice.ErrInvalidAmount)
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name: "Internal server error",
			body: `{"source_id":"task-501","amount":"4.00"}`,
			prepareMock: func() {
				service.EXPECT().Commit(authCtx(), 1, d("4.00"), "task-501").Return(nil, errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodPost, "/earn", bytes.NewBufferString(tt.body))
			r = r.WithContext(authCtx())
			w := httptest.NewRecorder()
			handler.Commit(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body dto.EarnCommitResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, int64(42), body.EntryID)
				assert.Equal(t, "129.40", body.NewBalance)
				assert.NotNil(t, body.Bonus)
				assert.Equal(t, "0.12", body.Bonus.GrantedTotal)
			}
		})
	}
}
