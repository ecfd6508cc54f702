// Command token prints an admin bearer token signed with JWT_SECRET.
//
//	JWT_SECRET=... go run ./cmd/token -sub ops -ttl 1h
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/nocturnal/nocturnal-api/internal/api/middleware"
	"github.com/nocturnal/nocturnal-api/internal/core/domain"
)

func main() {
	sub := flag.String("sub", "admin", "token subject")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	token, err := middleware.IssueToken(os.Getenv("JWT_SECRET"), *sub, domain.RoleAdmin, *ttl)
	if err != nil {
		log.Fatal().Err(err).Msg("issue token")
	}
	fmt.Println(token)
}
