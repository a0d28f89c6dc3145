package appMiddleware

import (
	"os"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const UserIDKey contextKey = "userID"
const UserRoleKey contextKey = "userRole"

// Claims carried by operator tokens for the admin wildfire routes.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JwtSecretKey signs operator tokens. Loaded from the environment at startup;
// the fallback only exists so local development works without a .env file.
var JwtSecretKey = []byte("replace-with-secure-env-var")

func init() {
	if s := os.Getenv("PHOENIX_JWT_SECRET"); s != "" {
		JwtSecretKey = []byte(s)
	}
}
