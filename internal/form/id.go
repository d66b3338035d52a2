package form

import "github.com/google/uuid"

// generateID returns a time-ordered UUID so saved recipes sort by creation.
func generateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback -- only fails if the random source does.
		return uuid.NewString()
	}
	return id.String()
}
