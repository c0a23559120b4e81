package main

import (
	"fmt"
	"os"
)

const starterConfig = `# podsettings configuration

name = "My Podcast"
url = "http://localhost:3000"
description = "A podcast about things"
owner = ""
owner_email = ""
language = "en"
feed_slug = "podcast"

addr = ":3000"
database_path = "data/settings.db"
option_prefix = "podcast_"

# Required. Leave empty to supply via ADMIN_PASSWORD / SESSION_SECRET env vars.
admin_password = ""
session_secret = ""
cookie_secure = false

# Base URL of the podcast hosting service API. Empty disables hosting calls.
hosting_api_url = ""
`

func runInit() error {
	const path = "podsettings.toml"
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := os.WriteFile(path, []byte(starterConfig), 0o644); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	fmt.Println("Set admin_password and session_secret before running 'podsettings serve'.")
	return nil
}
