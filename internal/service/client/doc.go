// Package client implements the version-client command.
//
// The command connects to the version server, requests the version and prints
// it as text or as protobuf JSON.
package client
