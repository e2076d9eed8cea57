package auth

import (
	"log"
	"os"
	"time"
)

var (
	adminUsername string
	adminPassword string
	jwtSecret     []byte
)

// TokenTTL is how long an issued login token stays valid.
const TokenTTL = 8 * time.Hour

const defaultDevSecret = "crop-asr-qa-dev-secret"

// LoadCredentials loads the admin credentials and JWT signing secret from
// environment variables. Called once at startup; warnings are logged for
// anything missing so misconfiguration surfaces immediately.
func LoadCredentials() {
	adminUsername = os.Getenv("ADMIN_USERNAME")
	adminPassword = os.Getenv("ADMIN_PASSWORD")

	if adminUsername == "" {
		log.Println("WARNING: ADMIN_USERNAME environment variable not set.")
	}
	if adminPassword == "" {
		log.Println("WARNING: ADMIN_PASSWORD environment variable not set.")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Println("WARNING: JWT_SECRET not set, using the development default.")
		secret = defaultDevSecret
	}
	jwtSecret = []byte(secret)
}
