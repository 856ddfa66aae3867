// Package tui implements the interactive terminal console for signctl.
//
// It is built on Bubble Tea models: a login flow that authenticates against
// the letter-seal server, and a main loop for browsing, sealing and
// verifying letters. All server calls run as asynchronous commands so the
// UI never blocks on the network.
package tui
