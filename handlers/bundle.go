// File: runway/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Runway endpoints
	RequestReservation gin.HandlerFunc
	Land               gin.HandlerFunc
	GetMax             gin.HandlerFunc
	GetMin             gin.HandlerFunc
	GetNext            gin.HandlerFunc
	ListReservations   gin.HandlerFunc
	SearchReservation  gin.HandlerFunc
	GetRank            gin.HandlerFunc

	// Journal endpoints
	GetAudit     gin.HandlerFunc
	StreamEvents gin.HandlerFunc
}

// NewHandlerBundle wires every runway endpoint of h.
func NewHandlerBundle(h *RunwayHandler) *HandlerBundle {
	return &HandlerBundle{
		RequestReservation: h.RequestReservation,
		Land:               h.Land,
		GetMax:             h.GetMax,
		GetMin:             h.GetMin,
		GetNext:            h.GetNext,
		ListReservations:   h.ListReservations,
		SearchReservation:  h.SearchReservation,
		GetRank:            h.GetRank,
		GetAudit:           h.GetAudit,
		StreamEvents:       h.StreamEvents,
	}
}
