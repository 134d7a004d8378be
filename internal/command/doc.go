// Package command runs external processes for drvsync.
//
// Two modes are provided:
//   - Run blocks until the process exits and returns its decoded output.
//     A non-zero exit is reported as *Error naming the command, exit code
//     and both output streams.
//   - Start launches the process without waiting. Combined output is written
//     to logs/output_<timestamp>.txt and the caller gets the log path back.
//
// Process output is decoded leniently: valid UTF-8 is used as is, anything
// else is decoded as GBK, and bytes that still cannot be mapped are dropped.
package command
