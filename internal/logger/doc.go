// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger writing console-encoded entries to stderr,
//   - context helpers (ToContext/FromContext/WithName/WithKV/WithFields),
//   - level configuration and parsing utilities,
//   - level helpers (Info, InfoKV, WarnKV, Errorf, ErrorKV, etc.).
//
// Services accept a context and extract the logger from it, so the server,
// the client and the version loader share scoped, structured logging.
package logger
