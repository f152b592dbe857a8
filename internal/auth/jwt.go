package auth

import (
	"time"

	"github.com/mancil-la/OBLEAS/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

type JWTCustomClaims struct {
	TrabajadorID uint       `json:"trabajador_id"`
	Usuario      string     `json:"usuario"`
	Rol          models.Rol `json:"rol"`
	jwt.RegisteredClaims
}

func GenerateToken(secret string, t *models.Trabajador) (string, error) {
	claims := &JWTCustomClaims{
		TrabajadorID: t.ID,
		Usuario:      t.Usuario,
		Rol:          t.Rol,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)), // 24 horas
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
