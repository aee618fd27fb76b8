// Package config loads typed configuration from environment variables.
//
// Each package owns a Config struct annotated with caarlos0/env tags:
//
//	type Config struct {
//		RecipientEmail string `env:"RECIPIENT_EMAIL" envDefault:"info@alzentdigital.com"`
//	}
//
// Load parses it once per process and hands out copies afterwards. A .env file
// in the working directory is read on first use through godotenv; LoadEnv
// reads explicit files, as the CLI does for its --env-file flag.
package config
