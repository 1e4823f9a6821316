package handlers

import (
	"crypto/rand"
	"errors"
	"log"
	"math/big"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/elad-asi/attendance-manager/config"
	"github.com/elad-asi/attendance-manager/database"
	"github.com/elad-asi/attendance-manager/mail"
	"github.com/elad-asi/attendance-manager/middlewares"
	"github.com/elad-asi/attendance-manager/models"
)

const (
	codeLength  = 6
	codeTTL     = 5 * time.Minute
	sessionTTL  = 7 * 24 * time.Hour
	maxAttempts = 3
)

var reEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type AuthHandler struct {
	JWTSecret string
	Mailer    mail.Mailer
}

func NewAuthHandler(cfg *config.Config, m mail.Mailer) *AuthHandler {
	return &AuthHandler{JWTSecret: cfg.JWTSecret, Mailer: m}
}

func (h *AuthHandler) signJWT(email string, ttl time.Duration) (string, error) {
	claims := middlewares.Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tk.SignedString([]byte(h.JWTSecret))
}

func generateCode() (string, error) {
	digits := make([]byte, codeLength)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

// POST /api/auth/request-code
// Issues a fresh 6-digit code for the email and mails it. Only the bcrypt
// hash hits the database; a repeat request replaces the previous code.
func (h *AuthHandler) RequestCode(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if !reEmail.MatchString(email) {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_EMAIL"})
	}

	code, err := generateCode()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "CODE_GENERATION_FAILED"})
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "CODE_GENERATION_FAILED"})
	}

	rec := models.EmailCode{
		Email:     email,
		CodeHash:  string(hash),
		ExpiresAt: time.Now().Add(codeTTL),
	}
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", email).Delete(&models.EmailCode{}).Error; err != nil {
			return err
		}
		return tx.Create(&rec).Error
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_UPDATE_FAILED"})
	}

	if err := h.Mailer.SendCode(email, code); err != nil {
		database.DB.Delete(&rec)
		if errors.Is(err, mail.ErrNotConfigured) {
			return echo.NewHTTPError(http.StatusServiceUnavailable, map[string]any{"error": "EMAIL_NOT_CONFIGURED"})
		}
		log.Printf("send code to %s failed: %v", email, err)
		return echo.NewHTTPError(http.StatusBadGateway, map[string]any{"error": "EMAIL_SEND_FAILED"})
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

// POST /api/auth/verify-code
// Checks the code (3 attempts, 5 minute window) and returns a 7-day session
// token.
func (h *AuthHandler) VerifyCode(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))
	code := strings.TrimSpace(req.Code)
	if email == "" || code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	var rec models.EmailCode
	if err := database.DB.First(&rec, "email = ?", email).Error; err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "CODE_NOT_FOUND"})
	}
	if time.Now().After(rec.ExpiresAt) {
		database.DB.Delete(&rec)
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "CODE_EXPIRED"})
	}
	if rec.Attempts >= maxAttempts {
		database.DB.Delete(&rec)
		return echo.NewHTTPError(http.StatusTooManyRequests, map[string]any{"error": "TOO_MANY_ATTEMPTS"})
	}

	if bcrypt.CompareHashAndPassword([]byte(rec.CodeHash), []byte(code)) != nil {
		database.DB.Model(&rec).Update("attempts", rec.Attempts+1)
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_CODE"})
	}

	database.DB.Delete(&rec)

	token, err := h.signJWT(email, sessionTTL)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "TOKEN_SIGN_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"token":   token,
		"email":   email,
	})
}

// GET /api/auth/session
// Reports whether the bearer token is still a valid session. Never errors:
// clients poll this on startup to decide between app and login screen.
func (h *AuthHandler) Session(c echo.Context) error {
	auth := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return c.JSON(http.StatusOK, map[string]any{"valid": false})
	}

	claims := &middlewares.Claims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(h.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return c.JSON(http.StatusOK, map[string]any{"valid": false})
	}
	return c.JSON(http.StatusOK, map[string]any{"valid": true, "email": claims.Email})
}
