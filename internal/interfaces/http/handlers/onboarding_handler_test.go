package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"partner-onboarding.backend/internal/domain/entities"
	domainerrors "partner-onboarding.backend/internal/domain/errors"
)

func TestOnboardingHandler_Finalize(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var gotCaller *entities.Caller
	var gotInput *entities.FinalizeOnboardingInput
	service := onboardingServiceStub{
		finalizeFn: func(_ context.Context, caller *entities.Caller, in *entities.FinalizeOnboardingInput) error {
			gotCaller, gotInput = caller, in
			if caller == nil {
				return domainerrors.Unauthenticated("sign in required")
			}
			if in.UserID != caller.UID {
				return domainerrors.PermissionDenied("cannot finalize another account")
			}
			return nil
		},
	}
	h := NewOnboardingHandler(service)
	r := gin.New()
	r.POST("/public/finalize", h.Finalize)
	r.POST("/onboarding/finalize", asCaller("uid-1", entities.IdentityRolePartner), h.Finalize)

	t.Run("self", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/onboarding/finalize", `{"userId":"uid-1","profileData":{"website":"x.com"}}`)
		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, gotCaller)
		assert.Equal(t, "uid-1", gotCaller.UID)
		assert.Equal(t, "x.com", gotInput.ProfileData["website"])
	})

	t.Run("someone else", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/onboarding/finalize", `{"userId":"uid-2","profileData":{}}`)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("no caller", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/public/finalize", `{"userId":"uid-1","profileData":{}}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Nil(t, gotCaller)
	})

	t.Run("profile data not an object", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/onboarding/finalize", `{"userId":"uid-1","profileData":"x"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "profileData must be an object")
	})
}

func TestOnboardingHandler_Status(t *testing.T) {
	gin.SetMode(gin.TestMode)

	service := onboardingServiceStub{
		statusFn: func(_ context.Context, caller *entities.Caller) (*entities.OnboardingStatus, error) {
			if caller.UID == "missing" {
				return nil, domainerrors.NotFound("account not found")
			}
			return &entities.OnboardingStatus{Website: true}, nil
		},
	}
	h := NewOnboardingHandler(service)
	r := gin.New()
	r.GET("/status/ok", asCaller("uid-1", entities.IdentityRolePartner), h.Status)
	r.GET("/status/missing", asCaller("missing", entities.IdentityRolePartner), h.Status)

	w := doJSON(r, http.MethodGet, "/status/ok", "")
	require.Equal(t, http.StatusOK, w.Code)
	var status entities.OnboardingStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, entities.OnboardingStatus{Website: true}, status)

	w = doJSON(r, http.MethodGet, "/status/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
