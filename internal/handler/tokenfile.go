package handler

import (
	"log"
	"os"
)

// saveTokenToFile dumps the latest access token to a local file so it
// can be pasted into curl or the API docs while developing. Failures
// are logged and swallowed.
func saveTokenToFile(path, token string) {
	if path == "" {
		return
	}
	if err := os.WriteFile(path, []byte(token), 0o600); err != nil {
		log.Printf("save token to %s: %v", path, err)
	}
}
