package v1

import (
	"github.com/hemanthscode/fintrack/internal/uuid"
)

// URIID is the uri binding to get the ID from the URL path
type URIID struct {
	ID uuid.UUID `uri:"id" binding:"required"` // The ID of the resource
}

// Pagination contains information about the pagination
type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint  `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}
