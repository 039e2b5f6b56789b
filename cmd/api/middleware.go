package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"paygate/internal/auth"
)

type contextKey string

const walletCtx contextKey = "wallet"

func (app *application) BasicAuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("authorization header is missing"))
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Basic" {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("authorization header is malformed"))
				return
			}

			decoded, err := base64.StdEncoding.DecodeString(parts[1])
			if err != nil {
				app.unauthorizedBasicErrorResponse(w, r, err)
				return
			}

			username := app.config.auth.basic.user
			pass := app.config.auth.basic.pass

			creds := strings.SplitN(string(decoded), ":", 2)
			if len(creds) != 2 || creds[0] != username || creds[1] != pass {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("invalid credentials"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// tokenClaims extracts and validates the bearer token, returning its claims.
func (app *application) tokenClaims(r *http.Request) (jwt.MapClaims, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, fmt.Errorf("authorization header is missing")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, fmt.Errorf("authorization header is malformed")
	}

	jwtToken, err := app.authenticator.ValidateToken(parts[1])
	if err != nil {
		return nil, err
	}

	claims, ok := jwtToken.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

func (app *application) WalletTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := app.tokenClaims(r)
		if err != nil {
			app.unauthorizedErrorResponse(w, r, err)
			return
		}

		if role, _ := claims["role"].(string); role != auth.RoleWallet {
			app.forbiddenResponse(w, r)
			return
		}

		wallet, _ := claims["sub"].(string)
		if wallet == "" {
			app.unauthorizedErrorResponse(w, r, fmt.Errorf("token has no subject"))
			return
		}

		ctx := context.WithValue(r.Context(), walletCtx, wallet)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (app *application) AdminTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := app.tokenClaims(r)
		if err != nil {
			app.unauthorizedErrorResponse(w, r, err)
			return
		}

		if role, _ := claims["role"].(string); role != auth.RoleAdmin {
			app.forbiddenResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RateLimiterMiddleware applies the global per-IP limit. Endpoint handlers
// layer their own tighter per-identifier limits on top.
func (app *application) RateLimiterMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cfg := app.config.rateLimiter
		if app.rateLimiter.IsRateLimited("ip:"+r.RemoteAddr, cfg.RequestsPerTimeFrame, cfg.TimeFrame) {
			app.rateLimitExceededResponse(w, r, cfg.TimeFrame.String())
			return
		}
		next.ServeHTTP(w, r)
	})
}

func getWalletFromContext(r *http.Request) string {
	wallet, _ := r.Context().Value(walletCtx).(string)
	return wallet
}
