package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"intervals-icu-mcp/configs"
	"intervals-icu-mcp/internal/adapter/outbound/icu"
)

// intervals-mcp-auth writes the credentials file read by intervals-mcp.
// API keys come from https://intervals.icu/settings under "Developer Settings".
func main() {
	var (
		apiKey     string
		athleteID  string
		configPath string
		skipVerify bool
	)
	flag.StringVar(&apiKey, "api-key", "", "Intervals.icu API key")
	flag.StringVar(&athleteID, "athlete-id", "", "Athlete ID, e.g. i123456")
	flag.StringVar(&configPath, "config", configs.DefaultConfigPath(), "Path of the credentials file to write")
	flag.BoolVar(&skipVerify, "skip-verify", false, "Do not verify the credentials against the API")
	flag.Parse()

	if configPath == "" {
		fmt.Fprintln(os.Stderr, "Could not determine a config location; pass -config explicitly.")
		os.Exit(1)
	}

	reader := bufio.NewReader(os.Stdin)
	if apiKey == "" {
		apiKey = prompt(reader, "Intervals.icu API key: ")
	}
	if athleteID == "" {
		athleteID = prompt(reader, "Athlete ID (e.g. i123456): ")
	}

	fileCfg := configs.FileConfig{
		APIKey:    strings.TrimSpace(apiKey),
		AthleteID: strings.TrimSpace(athleteID),
	}

	cfg := &configs.Config{
		APIKey:    fileCfg.APIKey,
		AthleteID: fileCfg.AthleteID,
	}
	if !cfg.ValidateCredentials() {
		fmt.Fprintln(os.Stderr, "Invalid credentials: the API key must be non-empty and the athlete ID must look like 'i123456'.")
		os.Exit(1)
	}

	if !skipVerify {
		if err := verify(fileCfg); err != nil {
			fmt.Fprintf(os.Stderr, "Credential verification failed: %v\n", err)
			fmt.Fprintln(os.Stderr, "Use -skip-verify to save them anyway.")
			os.Exit(1)
		}
		fmt.Println("Credentials verified against Intervals.icu.")
	}

	if err := writeConfig(configPath, fileCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write config: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Credentials saved to %s\n", configPath)
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}

// verify fetches the athlete profile with the new credentials. Loading the
// env config first keeps the base URL override usable in tests and self
// hosted setups.
func verify(fileCfg configs.FileConfig) error {
	cfg, err := configs.Load()
	if err != nil {
		// The credentials file may not exist yet; that is the point of this
		// tool. Fall back to the stock API settings.
		cfg = &configs.Config{
			BaseURL:           "https://intervals.icu/api/v1",
			HTTPClientTimeout: 30 * time.Second,
		}
	}
	cfg.APIKey = fileCfg.APIKey
	cfg.AthleteID = fileCfg.AthleteID

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := icu.New(cfg, nil, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	_, err = client.GetAthlete(ctx)
	return err
}

func writeConfig(path string, fileCfg configs.FileConfig) error {
	out, err := yaml.Marshal(fileCfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	// The file holds a secret; keep it owner-readable only.
	return os.WriteFile(path, out, 0o600)
}
