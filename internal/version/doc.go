// Package version loads the version descriptor that ships next to the binary.
//
// The descriptor is a YAML file named version.yaml. It is read exactly once,
// when a File is constructed with Load or LoadFromExecutable, and the parsed
// value never changes afterwards. Consumers depend on the Provider interface
// and only ever see the version string.
//
// Document keys are matched with the camelCase naming convention: the model
// field Version binds to the key "version".
package version
