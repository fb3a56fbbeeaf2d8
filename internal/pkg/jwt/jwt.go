package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jfraser77/hrops-backend/internal/domain/user"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies tokens minted by the identity provider and can issue
// access tokens for tooling and tests. There is no login flow in this
// service; session management lives upstream.
type Service interface {
	GenerateAccessToken(userID, name, email string, role user.Role) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey string
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		secretKey: secretKey,
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(userID, name, email string, role user.Role) (string, int64, error) {
	expiresAt := time.Now().Add(time.Hour).Unix()

	claims := map[string]interface{}{
		"user_id": userID,
		"name":    name,
		"email":   email,
		"role":    string(role),
		"type":    "access",
		"exp":     expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}
