// Package config provides configuration loading, merging, and validation
// facilities for the MinTid services.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables (after an optional .env file has been loaded)
//  2. Command-line flags
//  3. JSON config file
//
// The main entry points are [GetStructuredConfig] for the server runtime and
// [GetClientConfig] for the terminal client.
package config
