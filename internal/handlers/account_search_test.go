package handlers

import (
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

func TestSearchAccountsHandler(t *testing.T) {
	operatorID := uuid.New()
	validToken := "valid-token"

	t.Run("operator searches accounts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := NewMockAccountSearcher(ctrl)
		tokener := NewMockTransactionTokener(ctrl)

		tokener.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return(validToken, nil)
		tokener.EXPECT().GetClaims(gomock.Any(), validToken).Return(&jwt.Claims{
			UserID: operatorID, Role: models.RoleOperator, Email: "op@bank.test",
		}, nil)
		svc.EXPECT().Search(gomock.Any(), gomock.Any(), "123").Return([]models.AccountDB{
			{AccountID: uuid.New(), AccountNumber: "123-4567890-12", Status: models.AccountStatusActive},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/search?q=123", nil)
		rr := httptest.NewRecorder()

		NewSearchAccountsHandler(svc, tokener).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp AccountListResponse
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Len(t, resp.Accounts, 1)
	})

	t.Run("customer is forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := NewMockAccountSearcher(ctrl)
		tokener := NewMockTransactionTokener(ctrl)

		tokener.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return(validToken, nil)
		tokener.EXPECT().GetClaims(gomock.Any(), validToken).Return(&jwt.Claims{
			UserID: uuid.New(), Role: models.RoleCustomer, Email: "alice@example.com",
		}, nil)
		svc.EXPECT().Search(gomock.Any(), gomock.Any(), "123").Return(nil, services.ErrNotOperator)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/search?q=123", nil)
		rr := httptest.NewRecorder()

		NewSearchAccountsHandler(svc, tokener).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}
