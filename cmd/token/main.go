// Command token mints an HS256 bearer token for an allow-listed subject so
// operators can grant access without going through the identity provider.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/Masty1988/my-social-flow/internal/middleware"
)

func main() {
	_ = godotenv.Load()

	sub := flag.String("sub", "", "subject identifier to embed in the token (required)")
	locale := flag.String("locale", "fr", "locale claim (fr or en)")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime; 0 means no expiry")
	flag.Parse()

	if *sub == "" {
		fmt.Fprintln(os.Stderr, "usage: token -sub <subject> [-locale fr] [-ttl 24h]")
		os.Exit(2)
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET is required")
		os.Exit(1)
	}

	claims := middleware.TokenClaims{
		Sub:      *sub,
		Locale:   *locale,
		Issuer:   "my-social-flow",
		Audience: "my-social-flow-clients",
	}
	if *ttl > 0 {
		claims.Exp = time.Now().Add(*ttl).Unix()
	}
	token, err := middleware.SignJWT(secret, claims)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sign token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
