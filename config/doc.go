// Package config loads developer-local settings from a .env file (via
// joho/godotenv) and SGREP_*-prefixed environment variables, the way the
// teacher's internal/config package loads its own MORFX_*-prefixed
// settings.
package config
