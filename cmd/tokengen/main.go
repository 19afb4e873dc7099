// Command tokengen issues a signed bearer token accepted by the jwt auth
// backend. Intended for local development and manual API testing.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/expensely/expensely-be/internal/auth"
	"github.com/expensely/expensely-be/internal/config"
	"github.com/expensely/expensely-be/internal/models"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("tokengen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	userID := fs.String("user", "", "Subject user id for the token")
	email := fs.String("email", "", "Email claim (optional)")
	username := fs.String("username", "", "Username claim (optional)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *userID == "" {
		fmt.Fprintln(stdout, "Usage: tokengen -user <user-id> [-email <email>] [-username <name>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flag: user")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required to sign tokens")
	}

	manager := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	token, err := manager.Generate(models.Identity{
		UserID:   *userID,
		Email:    *email,
		Username: *username,
	})
	if err != nil {
		return fmt.Errorf("generate token: %w", err)
	}

	fmt.Fprintln(stdout, token)
	return nil
}
