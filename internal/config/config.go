// Package config holds the CLI-facing Options struct plus .env-sourced
// defaults via joho/godotenv.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Options is the full CLI surface of the decompiler.
type Options struct {
	In                string // required: path to bundle
	Out               string // required: output folder
	BundlesFolder     string // per-module folder for unbundled apps
	Entry             int    // restrict to a module + transitive deps; <0 means absent
	HasEntry          bool
	Performance       bool // emit per-plugin timing
	Verbose           bool // print final module dependency summary
	DecompileIgnored  bool // emit modules tagged ignored
	AggressiveCache   bool // trust cached ignore/NPM flags; skip re-parsing bodies
	NoEslint          bool // skip the external lint/format pass
	LogLevel          string
	CacheBucket       string // optional S3-compatible bucket name for the remote cache backend
	CacheEndpoint     string // S3-compatible endpoint host:port, required when CacheBucket is set
	CacheAccessKey    string
	CacheSecretKey    string
	CacheUseSSL       bool
}

// LoadDotEnv reads .env-sourced defaults for options that weren't set on
// the command line. Best effort: a missing .env file is not an error.
func LoadDotEnv(path string) map[string]string {
	if path == "" {
		path = ".env"
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		return map[string]string{}
	}
	return vars
}

// Validate checks the required-option rules; the caller exits non-zero
// on a violation.
func (o *Options) Validate() error {
	if o.In == "" {
		return fmt.Errorf("config: --in is required")
	}
	if o.Out == "" {
		return fmt.Errorf("config: --out is required")
	}
	if o.AggressiveCache && !o.HasEntry {
		return fmt.Errorf("config: --aggressiveCache requires --entry (and a pre-existing cache)")
	}
	if o.CacheBucket != "" && (o.CacheEndpoint == "" || o.CacheAccessKey == "" || o.CacheSecretKey == "") {
		return fmt.Errorf("config: --cacheBucket requires --cacheEndpoint, --cacheAccessKey, and --cacheSecretKey")
	}
	return nil
}

// ApplyEnvDefaults fills zero-valued fields in o from the process
// environment, falling back to env, the map LoadDotEnv returned, for
// variables that are not set, so a real environment variable always wins
// over a stale .env entry.
func (o *Options) ApplyEnvDefaults(env map[string]string) {
	if o.Out == "" {
		o.Out = lookupEnv(env, "METRODECOMP_OUT")
	}
	if o.BundlesFolder == "" {
		o.BundlesFolder = lookupEnv(env, "METRODECOMP_BUNDLES_FOLDER")
	}
	if o.LogLevel == "" {
		o.LogLevel = lookupEnv(env, "METRODECOMP_LOG_LEVEL")
	}
	if o.CacheBucket == "" {
		o.CacheBucket = lookupEnv(env, "METRODECOMP_CACHE_BUCKET")
	}
	if o.CacheEndpoint == "" {
		o.CacheEndpoint = lookupEnv(env, "METRODECOMP_CACHE_ENDPOINT")
	}
	if o.CacheAccessKey == "" {
		o.CacheAccessKey = lookupEnv(env, "METRODECOMP_CACHE_ACCESS_KEY")
	}
	if o.CacheSecretKey == "" {
		o.CacheSecretKey = lookupEnv(env, "METRODECOMP_CACHE_SECRET_KEY")
	}
}

func lookupEnv(env map[string]string, key string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return env[key]
}
