// Package cli provides command-line interface setup and configuration
// for the charla application. It handles flag parsing, command
// creation, configuration management using cobra and viper, and the
// interactive conversation session.
package cli
