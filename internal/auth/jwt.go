package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// StudioClaims is the claim bundle for studio sessions. The token is opaque
// to the browser; possession of a valid, unexpired token authenticates the
// studio but role still has to match the route class.
type StudioClaims struct {
	StudioID uuid.UUID `json:"studioId"`
	Email    string    `json:"email"`
	jwt.RegisteredClaims
}

type AdminClaims struct {
	ID   uuid.UUID `json:"id"`
	Role string    `json:"role"`
	jwt.RegisteredClaims
}

type TokenService struct {
	secret    []byte
	studioTTL time.Duration
	adminTTL  time.Duration
}

func NewTokenService(secret string, studioTTL, adminTTL time.Duration) *TokenService {
	return &TokenService{
		secret:    []byte(secret),
		studioTTL: studioTTL,
		adminTTL:  adminTTL,
	}
}

// StudioTokenTTL is the sliding window the gateway re-applies on every
// authenticated response.
func (s *TokenService) StudioTokenTTL() time.Duration {
	return s.studioTTL
}

func (s *TokenService) AdminTokenTTL() time.Duration {
	return s.adminTTL
}

func (s *TokenService) GenerateStudioToken(studioID uuid.UUID, email string) (string, error) {
	claims := StudioClaims{
		StudioID: studioID,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.studioTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *TokenService) GenerateAdminToken(adminID uuid.UUID) (string, error) {
	claims := AdminClaims{
		ID:   adminID,
		Role: RoleMasterAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.adminTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *TokenService) VerifyStudioToken(tokenString string) (*StudioClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &StudioClaims{}, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		return nil, fmt.Errorf(msgTokenParseFailed, err)
	}

	claims, ok := token.Claims.(*StudioClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf(msgInvalidTokenClaims)
	}

	if claims.StudioID == uuid.Nil {
		return nil, fmt.Errorf(msgInvalidTokenClaims)
	}

	return claims, nil
}

func (s *TokenService) VerifyAdminToken(tokenString string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		return nil, fmt.Errorf(msgTokenParseFailed, err)
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf(msgInvalidTokenClaims)
	}

	if claims.Role != RoleMasterAdmin {
		return nil, fmt.Errorf(msgWrongTokenRole)
	}

	return claims, nil
}

func (s *TokenService) keyFunc(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf(msgUnexpectedSigningMethod, token.Header["alg"])
	}
	return s.secret, nil
}
