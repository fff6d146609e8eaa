// Package version implements the gRPC transport for the version service.
//
// The service descriptor is declared over protobuf well-known types
// (google.protobuf.Empty in, google.protobuf.StringValue out), so it needs no
// generated code. Server adapts a version.Provider; NewVersionServiceClient
// builds the matching client stub.
package version
