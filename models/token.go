package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims, admin oturum token'ının payload'ı.
//
// Token sadece kullanıcı adını ve expire süresini taşır; sunucu tarafında
// saklanmaz. Geçerlilik imza + exp kontrolüyle belirlenir.
type TokenClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}
