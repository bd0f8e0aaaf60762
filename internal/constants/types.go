package constants

// Environment represents the execution environment (e.g., local, Lambda).
type Environment string

// Environment types for logger configuration.
const (
	Development Environment = "development"
	Production  Environment = "production"
)
