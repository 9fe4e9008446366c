package http

import (
	"errors"
	"net/http"
	"time"

	"riderdispatch/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	RoleRider = "rider"
	RoleAdmin = "admin"

	claimsContextKey = "claims"
)

// Claims carried by every bearer token. Riders act only on their own resources;
// admins act on anything.
type Claims struct {
	RiderID string `json:"rider_id,omitempty"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token.
func IssueToken(secret string, riderID *kernel.UUID, role string, ttl time.Duration, now time.Time) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is required")
	}
	if role != RoleRider && role != RoleAdmin {
		return "", errors.New("unknown role " + role)
	}
	if role == RoleRider && riderID == nil {
		return "", errors.New("rider token needs a rider id")
	}

	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if riderID != nil {
		claims.RiderID = riderID.String()
		claims.Subject = riderID.String()
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// JWTAuth rejects requests without a valid bearer token and stores the claims in the context.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(secret),
		SigningMethod: jwt.SigningMethodHS256.Alg(),
		NewClaimsFunc: func(_ echo.Context) jwt.Claims {
			return new(Claims)
		},
		SuccessHandler: func(c echo.Context) {
			if token, ok := c.Get("user").(*jwt.Token); ok {
				if claims, ok := token.Claims.(*Claims); ok {
					c.Set(claimsContextKey, claims)
				}
			}
		},
		ErrorHandler: func(c echo.Context, err error) error {
			c.Logger().Debugf("JWT rejected: %v", err)
			switch {
			case errors.Is(err, echojwt.ErrJWTMissing):
				return respondFailure(c, http.StatusUnauthorized, codeUnauthorized, "Missing bearer token")
			case errors.Is(err, jwt.ErrTokenExpired):
				return respondFailure(c, http.StatusUnauthorized, codeUnauthorized, "Token has expired")
			default:
				return respondFailure(c, http.StatusUnauthorized, codeUnauthorized, "Invalid bearer token")
			}
		},
	})
}

func claimsFrom(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(claimsContextKey).(*Claims)
	return claims, ok
}

// RequireAdmin allows only admin tokens through.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := claimsFrom(c)
			if !ok {
				return respondFailure(c, http.StatusUnauthorized, codeUnauthorized, "Missing bearer token")
			}
			if claims.Role != RoleAdmin {
				return respondFailure(c, http.StatusForbidden, codeForbidden, "Admin role required")
			}
			return next(c)
		}
	}
}

// RequireRiderOwner allows admins, and riders whose token matches the :riderId path parameter.
func RequireRiderOwner() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := claimsFrom(c)
			if !ok {
				return respondFailure(c, http.StatusUnauthorized, codeUnauthorized, "Missing bearer token")
			}
			if claims.Role == RoleAdmin {
				return next(c)
			}
			if claims.Role != RoleRider || claims.RiderID == "" || claims.RiderID != c.Param("riderId") {
				return respondFailure(c, http.StatusForbidden, codeForbidden, "Token does not belong to this rider")
			}
			return next(c)
		}
	}
}

// RequireRider allows rider tokens only and exposes the rider id to handlers.
func RequireRider() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := claimsFrom(c)
			if !ok {
				return respondFailure(c, http.StatusUnauthorized, codeUnauthorized, "Missing bearer token")
			}
			if claims.Role != RoleRider {
				return respondFailure(c, http.StatusForbidden, codeForbidden, "Rider role required")
			}
			if _, err := kernel.UUIDFromString(claims.RiderID); err != nil {
				return respondFailure(c, http.StatusUnauthorized, codeUnauthorized, "Token carries no rider id")
			}
			return next(c)
		}
	}
}

func riderFromToken(c echo.Context) (kernel.UUID, error) {
	claims, ok := claimsFrom(c)
	if !ok {
		return kernel.UUID{}, errors.New("no claims in context")
	}
	return kernel.UUIDFromString(claims.RiderID)
}
