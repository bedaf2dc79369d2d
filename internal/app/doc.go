// Package app wires configuration, transports, storage and the dispatcher
// into a single bulk send run.
//
// A run loads the recipient list and the message payload, builds the mail
// transport, delivers through dispatch.Dispatcher, and writes the report to
// the local file (and S3 when configured). Setup failures are returned as
// errors wrapping ErrSetup and nothing is sent. Once delivery has started,
// per-recipient failures and report write failures are printed but do not
// fail the run.
package app
