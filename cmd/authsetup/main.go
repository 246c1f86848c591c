// Command authsetup runs the interactive device-code sign-in against
// Microsoft identity and seeds the session token cache the server reads.
// Run it once on a machine with a browser; afterwards the server refreshes
// the cached token on its own.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/conectamos-mx/dashboard-ova/internal/config"
	"github.com/conectamos-mx/dashboard-ova/internal/graph"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	timeout := flag.Duration("timeout", 5*time.Minute, "how long to wait for the sign-in to complete")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	od := cfg.Source.OneDrive
	if od.ClientID == "" {
		return fmt.Errorf("source.onedrive.client_id is not configured")
	}
	if od.TokenCache == "" {
		return fmt.Errorf("source.onedrive.token_cache is not configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	oauth := graph.OAuthConfig(od.ClientID, od.TenantID)
	device, err := oauth.DeviceAuth(ctx)
	if err != nil {
		return fmt.Errorf("start device flow: %w", err)
	}

	fmt.Printf("To sign in, open %s and enter the code %s\n",
		device.VerificationURI, device.UserCode)
	fmt.Println("Waiting for you to complete the sign-in...")

	tok, err := oauth.DeviceAccessToken(ctx, device)
	if err != nil {
		return fmt.Errorf("device flow failed: %w", err)
	}

	client := graph.NewClient(od, nil)
	if err := client.SaveSessionToken(tok); err != nil {
		return fmt.Errorf("persist token cache: %w", err)
	}

	fmt.Printf("Token saved to %s\n", od.TokenCache)
	if tok.RefreshToken != "" {
		fmt.Println("A refresh token was granted; the server will renew the session automatically.")
	}
	return nil
}
