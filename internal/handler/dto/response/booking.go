// Package response holds the envelope types of the API. Query views are
// already shaped for the wire, so handlers return them directly and this
// package only carries the small envelopes around them.
package response

import "github.com/google/uuid"

type IDResponse struct {
	ID uuid.UUID `json:"id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
