package podsettings

import "embed"

// EmbeddedAssets contains static assets shipped with the framework:
// settings.js
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
