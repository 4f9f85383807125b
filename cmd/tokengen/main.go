package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"campus-experiment/clubdesk/internal/auth"
	"campus-experiment/clubdesk/internal/config"
	"campus-experiment/clubdesk/internal/constants"
)

// tokengen mints a session token for local development and testing.
func main() {
	userID := flag.Int64("user", 1, "campus user id")
	clubID := flag.Int64("club", 1, "club id the token is scoped to")
	role := flag.String("role", "member", "club role: member, leader, staff or admin")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	cfg := config.Load()
	verifier := auth.NewTokenVerifier(cfg.JWTSigningKey, cfg.JWTIssuer)

	token, err := verifier.Sign(*userID, *clubID, constants.ClubRole(*role), *ttl)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}

	fmt.Println(token)
}
