package server

import "context"

// Server is the web front end: it wires user actions to the fetcher,
// summarizer, session store, and exporter.
type Server interface {
	Start() error
	Shutdown(ctx context.Context) error
}
