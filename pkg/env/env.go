package env

import "os"

// Get reads an environment variable, treating unset and empty the same.
func Get(key, fallback string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	return v
}
