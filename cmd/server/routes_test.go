package main

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"passlink.backend/internal/interfaces/http/handlers"
	"passlink.backend/internal/usecases"
	"passlink.backend/pkg/jwt"
)

func buildTestRouter(devVerify bool) *gin.Engine {
	gin.SetMode(gin.TestMode)

	signer := jwt.NewSigner("test", time.Minute)
	tokens := usecases.NewTokenUsecase(nil, "http://localhost/auth/redeem", time.Hour, time.Hour)
	exchange := usecases.NewExchangeUsecase(tokens, nil, nil, usecases.ExchangePolicy{PollAttempts: 1, PollInterval: time.Millisecond})

	passthrough := func(c *gin.Context) { c.Next() }

	r := gin.New()
	registerRoutes(r, routeDeps{
		linkHandler:     handlers.NewLinkHandler(tokens, time.Minute),
		redeemHandler:   handlers.NewRedeemHandler(exchange, "http://localhost/signin"),
		callbackHandler: handlers.NewCallbackHandler(nil, "secret"),
		verifyHandler:   handlers.NewVerifyHandler(signer),
		issueGuard:      passthrough,
		redeemGuard:     passthrough,
		devVerify:       devVerify,
	})
	return r
}

func routeSet(r *gin.Engine) map[string]bool {
	set := make(map[string]bool)
	for _, route := range r.Routes() {
		set[route.Method+" "+route.Path] = true
	}
	return set
}

func TestRegisterRoutes(t *testing.T) {
	set := routeSet(buildTestRouter(true))

	for _, want := range []string{
		"POST /api/v1/auth/links",
		"POST /api/v1/auth/links/invalidate",
		"GET /api/v1/auth/links/status",
		"POST /api/v1/internal/verification-links",
		"GET /auth/redeem",
		"GET /auth/verify",
	} {
		if !set[want] {
			t.Fatalf("missing route %s; have %v", want, set)
		}
	}
}

func TestRegisterRoutes_VerifyOnlyInDevMode(t *testing.T) {
	set := routeSet(buildTestRouter(false))
	if set["GET /auth/verify"] {
		t.Fatal("verify route must not be registered outside dev mode")
	}
	if !set["GET /auth/redeem"] {
		t.Fatal("redeem route missing")
	}
}
