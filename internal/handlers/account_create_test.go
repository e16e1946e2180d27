package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jperaza/bancodemo/internal/jwt"
	"github.com/jperaza/bancodemo/internal/models"
	"github.com/jperaza/bancodemo/internal/services"
)

func TestCreateAccountHandler(t *testing.T) {
	operatorID := uuid.New()
	validToken := "valid-token"
	operatorClaims := &jwt.Claims{UserID: operatorID, Role: models.RoleOperator, Email: "op@bank.test"}

	tests := []struct {
		name               string
		requestBody        any
		setupMocks         func(svc *MockAccountCreator, tokener *MockTransactionTokener)
		expectedStatusCode int
	}{
		{
			name: "successful creation",
			requestBody: CreateAccountRequest{
				CustomerEmail: "alice@example.com",
				Kind:          models.AccountKindChecking,
			},
			setupMocks: func(svc *MockAccountCreator, tokener *MockTransactionTokener) {
				tokener.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return(validToken, nil)
				tokener.EXPECT().GetClaims(gomock.Any(), validToken).Return(operatorClaims, nil)
				svc.EXPECT().CreateForCustomer(gomock.Any(), gomock.Any(), "alice@example.com", models.AccountKindChecking).
					Return(&models.AccountDB{
						AccountID:     uuid.New(),
						AccountNumber: "123-4567890-12",
						Kind:          models.AccountKindChecking,
						Status:        models.AccountStatusActive,
						UserID:        uuid.New(),
					}, nil)
			},
			expectedStatusCode: http.StatusCreated,
		},
		{
			name: "unknown customer",
			requestBody: CreateAccountRequest{
				CustomerEmail: "nobody@example.com",
				Kind:          models.AccountKindSavings,
			},
			setupMocks: func(svc *MockAccountCreator, tokener *MockTransactionTokener) {
				tokener.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return(validToken, nil)
				tokener.EXPECT().GetClaims(gomock.Any(), validToken).Return(operatorClaims, nil)
				svc.EXPECT().CreateForCustomer(gomock.Any(), gomock.Any(), "nobody@example.com", models.AccountKindSavings).
					Return(nil, services.ErrCustomerNotFound)
			},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name: "customer is forbidden",
			requestBody: CreateAccountRequest{
				CustomerEmail: "alice@example.com",
				Kind:          models.AccountKindSavings,
			},
			setupMocks: func(svc *MockAccountCreator, tokener *MockTransactionTokener) {
				tokener.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return(validToken, nil)
				tokener.EXPECT().GetClaims(gomock.Any(), validToken).Return(&jwt.Claims{
					UserID: uuid.New(), Role: models.RoleCustomer, Email: "alice@example.com",
				}, nil)
				svc.EXPECT().CreateForCustomer(gomock.Any(), gomock.Any(), "alice@example.com", models.AccountKindSavings).
					Return(nil, services.ErrNotOperator)
			},
			expectedStatusCode: http.StatusForbidden,
		},
		{
			name:        "invalid request body",
			requestBody: "not-json",
			setupMocks: func(svc *MockAccountCreator, tokener *MockTransactionTokener) {
				tokener.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return(validToken, nil)
				tokener.EXPECT().GetClaims(gomock.Any(), validToken).Return(operatorClaims, nil)
			},
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := NewMockAccountCreator(ctrl)
			tokener := NewMockTransactionTokener(ctrl)
			tt.setupMocks(svc, tokener)

			var body bytes.Buffer
			assert.NoError(t, json.NewEncoder(&body).Encode(tt.requestBody))

			req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", &body)
			rr := httptest.NewRecorder()

			NewCreateAccountHandler(svc, tokener).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatusCode, rr.Code)
		})
	}
}
