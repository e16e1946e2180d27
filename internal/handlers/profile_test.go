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
)

func TestProfileHandler(t *testing.T) {
	userID := uuid.New()
	validToken := "valid-token"

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := NewMockProfileReader(ctrl)
	tokener := NewMockTransactionTokener(ctrl)

	phone := "+1-555-0100"
	tokener.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return(validToken, nil)
	tokener.EXPECT().GetClaims(gomock.Any(), validToken).Return(&jwt.Claims{
		UserID: userID, Role: models.RoleCustomer, Email: "alice@example.com",
	}, nil)
	reader.EXPECT().GetByID(gomock.Any(), userID).Return(&models.UserDB{
		UserID: userID,
		Name:   "Alice",
		Email:  "alice@example.com",
		Phone:  &phone,
		Role:   models.RoleCustomer,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	rr := httptest.NewRecorder()

	NewProfileHandler(reader, tokener).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp ProfileResponse
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "Alice", resp.Name)
	assert.Equal(t, models.RoleCustomer, resp.Role)
	assert.Equal(t, &phone, resp.Phone)
}

func TestProfileHandler_Unauthorized(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := NewMockProfileReader(ctrl)
	tokener := NewMockTransactionTokener(ctrl)

	tokener.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("", http.ErrNoCookie)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	rr := httptest.NewRecorder()

	NewProfileHandler(reader, tokener).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
