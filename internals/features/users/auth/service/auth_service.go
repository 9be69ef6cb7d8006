// file: internals/features/users/auth/service/auth_service.go
package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"quanlysinhvien_backend/internals/configs"
	authDTO "quanlysinhvien_backend/internals/features/users/auth/dto"
	authModel "quanlysinhvien_backend/internals/features/users/auth/model"
	helper "quanlysinhvien_backend/internals/helpers"
)

/* ==========================
   Const & small helpers
========================== */

const (
	accessTTLDefault  = 24 * time.Hour
	refreshTTLDefault = 7 * 24 * time.Hour
)

func nowUTC() time.Time { return time.Now().UTC() }

func getJWTSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		secret = strings.TrimSpace(os.Getenv("JWT_SECRET"))
	}
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET is not set")
	}
	return secret, nil
}

func getRefreshSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTRefreshSecret)
	if secret == "" {
		secret = strings.TrimSpace(os.Getenv("JWT_REFRESH_SECRET"))
	}
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_REFRESH_SECRET is not set")
	}
	return secret, nil
}

func strptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Refresh tokens are stored hashed so a leaked table cannot be replayed.
func computeRefreshHash(token, secret string) []byte {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(token))
	return m.Sum(nil)
}

/* ==========================
   LOGIN (username + password)
========================== */

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var input authDTO.LoginRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	input.Username = strings.TrimSpace(input.Username)
	if input.Username == "" || input.Password == "" {
		return helper.Error(c, fiber.StatusBadRequest, "Username and password are required")
	}

	var user authModel.UserModel
	err := db.WithContext(c.Context()).
		Where("user_username = ?", input.Username).
		Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Error(c, fiber.StatusUnauthorized, "Wrong username or password")
	}
	if err != nil {
		return helper.JsonError(c, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.UserPasswordHash), []byte(input.Password)) != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Wrong username or password")
	}

	return issueTokens(c, db, &user)
}

/* ==========================
   ISSUE TOKENS + Response
========================== */

func buildAccessClaims(user *authModel.UserModel, now time.Time) jwt.MapClaims {
	claims := jwt.MapClaims{
		"typ":       "access",
		"sub":       user.UserID.String(),
		"user_id":   user.UserID.String(),
		"user_name": user.UserUsername,
		"role":      user.UserRole,
		"iat":       now.Unix(),
		"exp":       now.Add(accessTTLDefault).Unix(),
	}
	if user.UserStudentCode != nil {
		claims["student_code"] = *user.UserStudentCode
	}
	return claims
}

func buildRefreshClaims(userID uuid.UUID, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"typ": "refresh",
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(refreshTTLDefault).Unix(),
	}
}

func issueTokens(c *fiber.Ctx, db *gorm.DB, user *authModel.UserModel) error {
	jwtSecret, err := getJWTSecret()
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	now := nowUTC()

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, buildAccessClaims(user, now)).
		SignedString([]byte(jwtSecret))
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to sign access token")
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, buildRefreshClaims(user.UserID, now)).
		SignedString([]byte(refreshSecret))
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to sign refresh token")
	}

	ua, ip := c.Get("User-Agent"), c.IP()
	if err := db.WithContext(c.Context()).Create(&authModel.RefreshTokenModel{
		UserID:    user.UserID,
		TokenHash: computeRefreshHash(refreshToken, refreshSecret),
		ExpiresAt: now.Add(refreshTTLDefault),
		UserAgent: strptr(ua),
		IP:        strptr(ip),
	}).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to store refresh token")
	}

	setAuthCookies(c, accessToken, refreshToken, now)

	return helper.Success(c, "Login successful", fiber.Map{
		"user":         authDTO.ToUserResponse(user),
		"access_token": accessToken,
	})
}

func setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string, now time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  now.Add(accessTTLDefault),
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  now.Add(refreshTTLDefault),
	})
}

/* ==========================
   REFRESH TOKEN (rotate)
========================== */

func RefreshToken(db *gorm.DB, c *fiber.Ctx) error {
	refreshCookie := strings.TrimSpace(c.Cookies("refresh_token"))
	if refreshCookie == "" {
		return helper.Error(c, fiber.StatusUnauthorized, "Refresh token missing")
	}

	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	tok, err := jwt.Parse(refreshCookie, func(t *jwt.Token) (any, error) {
		return []byte(refreshSecret), nil
	})
	if err != nil || !tok.Valid {
		return helper.Error(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}
	claims, _ := tok.Claims.(jwt.MapClaims)
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}

	hash := computeRefreshHash(refreshCookie, refreshSecret)
	var stored authModel.RefreshTokenModel
	err = db.WithContext(c.Context()).
		Where("token_hash = ? AND revoked_at IS NULL AND expires_at > ?", hash, nowUTC()).
		Take(&stored).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Error(c, fiber.StatusUnauthorized, "Refresh token unknown or revoked")
	}
	if err != nil {
		return helper.JsonError(c, err)
	}

	var user authModel.UserModel
	if err := db.WithContext(c.Context()).
		Where("user_id = ?", userID).
		Take(&user).Error; err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "User no longer exists")
	}

	// Rotation: the presented token is spent regardless of the outcome below.
	if err := db.WithContext(c.Context()).Delete(&stored).Error; err != nil {
		log.Printf("[WARN] failed to delete rotated refresh token: %v", err)
	}

	return issueTokens(c, db, &user)
}

/* ==========================
   LOGOUT
========================== */

func Logout(db *gorm.DB, c *fiber.Ctx) error {
	accessToken := helper.GetRawAccessToken(c)

	if accessToken != "" {
		if err := blacklistToken(db, accessToken, resolveBlacklistTTL(accessToken)); err != nil {
			log.Printf("[WARN] failed to blacklist token: %v", err)
		}
	}

	if rt := strings.TrimSpace(c.Cookies("refresh_token")); rt != "" {
		if secret, err := getRefreshSecret(); err == nil {
			hash := computeRefreshHash(rt, secret)
			_ = db.WithContext(c.Context()).
				Where("token_hash = ?", hash).
				Delete(&authModel.RefreshTokenModel{}).Error
		}
	}

	expired := nowUTC().Add(-time.Hour)
	for _, name := range []string{"access_token", "refresh_token"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			HTTPOnly: true,
			Secure:   true,
			SameSite: "None",
			Path:     "/",
			Expires:  expired,
			MaxAge:   -1,
		})
	}

	return helper.Success(c, "Logout successful", nil)
}

// Idempotent: re-blacklisting the same token is not an error.
func blacklistToken(db *gorm.DB, token string, ttl time.Duration) error {
	entry := authModel.TokenBlacklist{
		Token:     token,
		ExpiredAt: nowUTC().Add(ttl),
	}
	err := db.Create(&entry).Error
	if err != nil && (strings.Contains(strings.ToLower(err.Error()), "duplicate") ||
		strings.Contains(strings.ToLower(err.Error()), "unique")) {
		return nil
	}
	return err
}

func resolveBlacklistTTL(accessToken string) time.Duration {
	ttl := 2 * time.Minute
	if v := os.Getenv("BLACKLIST_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	jwtSecret, err := getJWTSecret()
	if err != nil || accessToken == "" {
		return ttl
	}
	if tok, err := jwt.Parse(accessToken, func(t *jwt.Token) (any, error) {
		return []byte(jwtSecret), nil
	}); err == nil {
		if claims, ok := tok.Claims.(jwt.MapClaims); ok && tok.Valid {
			if exp, ok := claims["exp"].(float64); ok {
				until := time.Until(time.Unix(int64(exp), 0))
				if until > 0 {
					return until + 60*time.Second
				}
				return time.Minute
			}
		}
	}
	return ttl
}

/* ==========================
   CHANGE PASSWORD
========================== */

func ChangePassword(db *gorm.DB, c *fiber.Ctx, userID uuid.UUID, oldPassword, newPassword string) error {
	var user authModel.UserModel
	err := db.WithContext(c.Context()).
		Where("user_id = ?", userID).
		Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Error(c, fiber.StatusNotFound, "User not found")
	}
	if err != nil {
		return helper.JsonError(c, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.UserPasswordHash), []byte(oldPassword)) != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Old password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Password hashing failed")
	}

	if err := db.WithContext(c.Context()).
		Model(&user).
		Update("user_password_hash", string(hash)).Error; err != nil {
		return helper.JsonError(c, err)
	}
	return helper.Success(c, "Password changed", nil)
}
