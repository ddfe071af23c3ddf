package auth

import (
	"log"
	"os"
)

var serviceUsername string
var servicePassword string // Plain text for MVP

// LoadServiceCredentials loads the API username and password from
// environment variables. It logs a warning if they are not set.
func LoadServiceCredentials() {
	serviceUsername = os.Getenv("SERVICE_USERNAME")
	servicePassword = os.Getenv("SERVICE_PASSWORD")

	if serviceUsername == "" {
		log.Println("WARNING: SERVICE_USERNAME environment variable not set.")
	}
	if servicePassword == "" {
		log.Println("WARNING: SERVICE_PASSWORD environment variable not set.")
	}
}
