package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Static errors for err113 compliance.
var (
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrMissingToken         = errors.New("missing bearer token")
	ErrInvalidToken         = errors.New("invalid token")
	ErrUnexpectedSignMethod = errors.New("unexpected signing method")
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// handleLogin checks credentials against the configured user table and
// issues a signed token.
func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest

	err := c.ShouldBindJSON(&req)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)

		return
	}

	hash, ok := s.config.Users[req.Username]
	if !ok {
		respondError(c, http.StatusUnauthorized, ErrInvalidCredentials)

		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password))
	if err != nil {
		respondError(c, http.StatusUnauthorized, ErrInvalidCredentials)

		return
	}

	expiresAt := time.Now().Add(s.config.TokenTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": req.Username,
		"exp": expiresAt.Unix(),
		"iat": time.Now().Unix(),
	})

	signed, err := token.SignedString([]byte(s.config.AuthSecret))
	if err != nil {
		respondError(c, http.StatusInternalServerError, fmt.Errorf("signing token: %w", err))

		return
	}

	s.logger.Info("user logged in", map[string]interface{}{"username": req.Username})

	respond(c, http.StatusOK, loginResponse{
		Token:     signed,
		Username:  req.Username,
		ExpiresAt: expiresAt.UTC(),
	})
}

// requireAuth rejects requests without a valid bearer token.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			respondError(c, http.StatusUnauthorized, ErrMissingToken)

			return
		}

		raw := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("%w: %v", ErrUnexpectedSignMethod, t.Header["alg"])
			}

			return []byte(s.config.AuthSecret), nil
		})
		if err != nil || !token.Valid {
			respondError(c, http.StatusUnauthorized, ErrInvalidToken)

			return
		}

		c.Next()
	}
}
