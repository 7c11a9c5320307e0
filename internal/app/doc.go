// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the serving lifecycle: the content
// snapshot, its reloads, and the HTTP server around them, decoupled from
// any specific entrypoint like a CLI.
package app
