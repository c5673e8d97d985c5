// Package config loads pipeline settings from a JSON file, a .env file,
// and environment variables, in that order of increasing precedence.
//
// A missing config file is not an error: the loader starts from defaults
// that mirror the documented config.json shape, so a run with nothing but
// environment variables (API keys, credentials path) still works.
package config
