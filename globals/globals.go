package globals

import (
	"context"
	"os"
)

var JwtSecret = []byte(jwtSecretFromEnv())

func jwtSecretFromEnv() string {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return s
	}
	return "your_secret_key"
}

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const RoleKey ContextKey = "role"

var Ctx = context.Background()
