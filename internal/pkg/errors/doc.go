// Package errors provides application error types for the AI-PaaS console API.
//
// This package defines:
//   - AppError type with error classification
//   - Error constructors for common error types
//   - Error type checking helpers
//   - HTTP status code mapping
//
// # Error Types
//
//   - NotFound: Resource does not exist (404)
//   - Validation: Invalid input data (400)
//   - Conflict: Uniqueness constraint violated (409)
//   - Internal: Unexpected server error (500)
//
// # Usage
//
// Create errors using constructor functions:
//
//	return apperrors.NotFound("service")
//	return apperrors.Validation("name is required")
//
// Check error types:
//
//	if apperrors.IsNotFound(err) {
//	    // Handle not found
//	}
//
// Errors support wrapping with fmt.Errorf:
//
//	return fmt.Errorf("operation failed: %w", apperrors.NotFound("service"))
package errors
