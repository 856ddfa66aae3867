package client

// Client is the lifecycle contract of the console application: Run blocks
// from startup until the user exits.
type Client interface {
	Run() error
}
