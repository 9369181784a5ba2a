package config

import (
	"os"
)

// JWTSecret verifies bearer tokens issued by the identity service.
var JWTSecret []byte

func init() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "your-secret-key-change-this-in-production"
	}
	JWTSecret = []byte(secret)
}
