// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Defines the contract for dependencies required by the core business logic

package interfaces

// Dependencies holds the external collaborators shared by the core services
type Dependencies struct {
	// Cache stores extraction results; may be nil
	Cache Cache

	// HTTPClient performs API calls such as the Bluesky thread lookup
	HTTPClient HTTPClient

	// Logger provides structured logging
	Logger Logger
}
