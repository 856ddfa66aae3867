package server

// Server is the lifecycle contract of the HTTP server: RunServer blocks
// until the process receives a termination signal, Shutdown drains open
// connections and releases the listener.
type Server interface {
	RunServer()
	Shutdown()
}
