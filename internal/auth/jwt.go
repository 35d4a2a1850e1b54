package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Roles issued by the service.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// Claims represents JWT claims
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService handles JWT token operations
type JWTService struct {
	secretKey           []byte
	customerTokenExpiry time.Duration
	adminTokenExpiry    time.Duration
}

// NewJWTService creates a new JWT service
func NewJWTService(secretKey string, customerExpiry, adminExpiry time.Duration) *JWTService {
	return &JWTService{
		secretKey:           []byte(secretKey),
		customerTokenExpiry: customerExpiry,
		adminTokenExpiry:    adminExpiry,
	}
}

// GenerateCustomerToken creates a signed token for a storefront customer
func (s *JWTService) GenerateCustomerToken(customerID, email string) (string, time.Time, error) {
	return s.generate(customerID, email, RoleCustomer, s.customerTokenExpiry)
}

// GenerateAdminToken creates a signed token for a console admin
func (s *JWTService) GenerateAdminToken(adminID, email string) (string, time.Time, error) {
	return s.generate(adminID, email, RoleAdmin, s.adminTokenExpiry)
}

func (s *JWTService) generate(userID, email, role string, expiry time.Duration) (string, time.Time, error) {
	expiresAt := time.Now().Add(expiry)

	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ValidateToken validates a signed token and returns its claims
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// GetCustomerTokenExpiry returns the customer token expiry duration
func (s *JWTService) GetCustomerTokenExpiry() time.Duration {
	return s.customerTokenExpiry
}

// GetAdminTokenExpiry returns the admin token expiry duration
func (s *JWTService) GetAdminTokenExpiry() time.Duration {
	return s.adminTokenExpiry
}
