package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"partner-onboarding.backend/internal/interfaces/http/handlers"
	"partner-onboarding.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	requestHandler       *handlers.RequestHandler
	registrationHandler  *handlers.RegistrationHandler
	authHandler          *handlers.AuthHandler
	onboardingHandler    *handlers.OnboardingHandler
	adminHandler         *handlers.AdminHandler
	authMiddleware       gin.HandlerFunc
	idempotencyRetention time.Duration
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Public intake forms
		requests := v1.Group("/requests")
		requests.Use(middleware.IdempotencyMiddleware(d.idempotencyRetention))
		{
			requests.POST("/signup", d.requestHandler.SubmitSignup)
			requests.POST("/contact", d.requestHandler.SubmitContact)
		}

		// Registration with a one-time code (public, attempts limited per email)
		registration := v1.Group("/registration")
		{
			registration.POST("/verify", d.registrationHandler.VerifyCode)
			registration.POST("/complete", d.registrationHandler.CompleteRegistration)
		}

		auth := v1.Group("/auth")
		{
			auth.POST("/token", d.authHandler.SignIn)
		}

		// Onboarding (self or admin)
		onboarding := v1.Group("/onboarding")
		onboarding.Use(d.authMiddleware)
		{
			onboarding.POST("/finalize", d.onboardingHandler.Finalize)
			onboarding.GET("/status", d.onboardingHandler.Status)
		}

		// Admin routes (protected)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.GET("/requests", d.adminHandler.ListRequests)
			admin.POST("/requests/:id/approve", d.adminHandler.ApproveRequest)
			admin.POST("/accounts/:id/toggle-status", d.adminHandler.ToggleAccountStatus)
		}
	}
}
