// Package client is the signctl application runtime: it chains the login
// flow and the letter console, and turns a logout into a fresh login
// prompt instead of a process exit.
package client
