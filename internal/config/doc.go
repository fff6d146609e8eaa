// Package config defines the settings used by the version server and client
// and provides helpers to load, validate and save them in YAML format.
//
// The Config type holds the gRPC address, the optional HTTP status address,
// the log level and the network timeout.
package config
