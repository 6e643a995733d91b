package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// maxCredentialSlots is the number of numbered APP_USERNAMEn/APP_PASSWORDn
// pairs read after the unnumbered one.
const maxCredentialSlots = 4

type Credential struct {
	Username string
	Password string
}

type Config struct {
	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPort      string
	AppPort     string
	AppEnv      string
	JWTSecret   string
	CORSOrigin  string
	CompanyName string
	Timezone    string
	Credentials []Credential
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:      os.Getenv("DB_HOST"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      os.Getenv("DB_NAME"),
		DBPort:      os.Getenv("DB_PORT"),
		AppPort:     getenv("APP_PORT", "8080"),
		AppEnv:      os.Getenv("APP_ENV"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		CORSOrigin:  getenv("CORS_ORIGIN", "http://localhost:3000"),
		CompanyName: getenv("COMPANY_NAME", "Invoice Desk"),
		Timezone:    getenv("APP_TIMEZONE", "Asia/Kolkata"),
		Credentials: loadCredentials(),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	return cfg
}

// loadCredentials reads APP_USERNAME/APP_PASSWORD followed by
// APP_USERNAME1..4/APP_PASSWORD1..4. Slots without a username are skipped.
func loadCredentials() []Credential {
	var creds []Credential

	for i := 0; i <= maxCredentialSlots; i++ {
		suffix := ""
		if i > 0 {
			suffix = fmt.Sprint(i)
		}

		username := os.Getenv("APP_USERNAME" + suffix)
		if username == "" {
			continue
		}
		creds = append(creds, Credential{
			Username: username,
			Password: os.Getenv("APP_PASSWORD" + suffix),
		})
	}

	return creds
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
