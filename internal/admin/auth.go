package admin

import (
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// JwtCustomClaims identifies the logged-in administrator.
type JwtCustomClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Auth issues admin tokens. Credentials come from the environment; the
// shop has a single administrator account.
type Auth struct {
	rdb      *redis.Client
	secret   []byte
	email    string
	password string
}

// NewAuth creates the admin authenticator.
func NewAuth(rdb *redis.Client, secret []byte, email, password string) *Auth {
	return &Auth{rdb: rdb, secret: secret, email: email, password: password}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login validates credentials and returns a signed 24h token.
func (a *Auth) Login(c echo.Context) error {
	req := loginRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	if req.Email != a.email || req.Password != a.password {
		return c.JSON(401, map[string]string{"error": "invalid credentials"})
	}

	claims := &JwtCustomClaims{
		Email: req.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
		},
	}

	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t, err := tkn.SignedString(a.secret)
	if err != nil {
		logger.Error().Err(err).Msg("Error signing admin token")
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	// Mirror the session into Redis so the admin panel can be logged out
	// server-side before the token expires.
	if os.Getenv("ENV") != "test" {
		if err := a.rdb.Set(c.Request().Context(), "admin-session:"+req.Email, t, time.Hour*24).Err(); err != nil {
			logger.Error().Err(err).Msg("Error storing admin session")
			return c.JSON(500, map[string]string{"error": err.Error()})
		}
	}

	return c.JSON(200, map[string]string{"token": t})
}
