// Package jwt wraps token verification for branch-scoped admin access.
// Token issuance happens in the identity system that fronts the admin UI;
// this service only verifies tokens and exposes the jwtauth instance the
// router middleware needs.
package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	ValidateToken(tokenString string) (branch string, err error)
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

// ValidateToken decodes a token and returns its branch claim. An empty
// branch means the caller may see all branches.
func (j *JWTService) ValidateToken(tokenString string) (string, error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return "", err
	}

	branchVal, ok := token.Get("branch")
	if !ok {
		return "", nil
	}

	branch, ok := branchVal.(string)
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}

	return branch, nil
}
