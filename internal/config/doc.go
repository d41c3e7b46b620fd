// Package config loads, normalizes, and validates Vesper configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// DRIVE_ROOT_FOLDER_ID and the OAUTH_* credential variables. The Config type
// centralizes every knob the renderer needs: the Drive root, the publish
// horizon, target durations, transcoder binaries, and logging output.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
