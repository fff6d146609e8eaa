package version

import "errors"

var (
	// ErrResolution is returned when the directory of the running program cannot be determined.
	ErrResolution = errors.New("resolve program directory")
	// ErrFileNotFound is returned when version.yaml does not exist in the resolved directory.
	ErrFileNotFound = errors.New("version descriptor not found")
	// ErrRead is returned when version.yaml exists but cannot be opened or read.
	ErrRead = errors.New("read version descriptor")
	// ErrParse is returned when version.yaml is not a well-formed descriptor.
	ErrParse = errors.New("parse version descriptor")
)
