// Package terminal provides interactive shell sessions for terminal cards.
//
// Each session wraps a PTY-backed shell process. Output is drained into a
// ring buffer so cards can poll for new output without blocking the shell,
// and sessions survive card refocus because they are keyed by session ID
// rather than connection.
//
// Sessions default their working directory to the user workspace so a
// fresh terminal card lands in the same tree the file browser shows.
//
// Components:
//   - Manager: Session lifecycle (create, write, read, resize, kill)
//   - Provider: Tool definitions and execution routing
package terminal
