// Command token prints a bearer token for a user id, signed with the
// configured JWT secret.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Domenick1991/parkbooking/config"
	"github.com/Domenick1991/parkbooking/internal/logger"
	"github.com/Domenick1991/parkbooking/internal/service/auth"
	"github.com/joho/godotenv"
)

func main() {
	userID := flag.Int64("user", 0, "user id to issue the token for")
	ttl := flag.Duration("ttl", 0, "token lifetime, defaults to auth.token_ttl_minutes")
	flag.Parse()

	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	log := logger.New(logger.Config{Output: os.Stderr, Format: logger.TEXT})

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}
	if *userID <= 0 {
		log.Fatal("A positive -user is required")
	}
	if *ttl <= 0 {
		*ttl = time.Duration(cfg.Auth.TokenTTLMinutes) * time.Minute
	}

	// users are not looked up when issuing
	resolver := auth.NewResolver(nil, cfg.Auth.JWTSecret, log)
	token, err := resolver.IssueToken(*userID, *ttl)
	if err != nil {
		log.Fatal("Failed to issue token", "error", err)
	}
	fmt.Println(token)
}
