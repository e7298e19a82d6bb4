package utils

import (
	"errors"
	"os"
	"time"

	"clinicblocks/config"

	"github.com/golang-jwt/jwt"
)

// RoleAdmin is the role claim required by the block management endpoints.
const RoleAdmin = "admin"

// StaffClaims is the subset of the session token the block service relies on.
type StaffClaims struct {
	Subject string
	Name    string
	Role    string
}

// ErrMissingJWTSecret is returned when production runs without a signing secret.
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set in production")

// devSecret signs tokens outside production only.
const devSecret = "clinicblocks-dev-secret"

func secretKey() ([]byte, error) {
	if config.AppConfig.JWTSecret != "" {
		return []byte(config.AppConfig.JWTSecret), nil
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return []byte(secret), nil
	}
	if config.IsProduction() {
		return nil, ErrMissingJWTSecret
	}
	return []byte(devSecret), nil
}

// CheckJWTSecret fails when no signing secret is configured in production.
func CheckJWTSecret() error {
	_, err := secretKey()
	return err
}

// GenerateToken creates a signed JWT for a staff member. Tokens are normally minted by the
// external auth service; this is used by tests and local tooling.
func GenerateToken(subject, name, role string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  subject,
		"name": name,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	key, err := secretKey()
	if err != nil {
		return "", err
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey()
	})
}

// ExtractStaffClaims validates the token and returns its staff claims.
func ExtractStaffClaims(tokenString string) (*StaffClaims, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}
	name, _ := claims["name"].(string)
	if name == "" {
		name = sub
	}
	role, _ := claims["role"].(string)

	return &StaffClaims{Subject: sub, Name: name, Role: role}, nil
}
