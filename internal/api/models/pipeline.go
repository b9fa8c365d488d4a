package models

import "time"

// SelectionView is the API shape of a best-route selection.
type SelectionView struct {
	ItineraryID    string   `json:"itineraryId"`
	Modes          []string `json:"modes"`
	Label          string   `json:"label"`
	ElapsedSeconds int64    `json:"elapsedSeconds"`
	TravelSeconds  int64    `json:"travelSeconds"`
}

// PipelineRun is the response of a full pipeline execution.
type PipelineRun struct {
	PlanKey   string        `json:"planKey"`
	CSVKey    string        `json:"csvKey"`
	Selection SelectionView `json:"selection"`
}

// ObjectList enumerates the keys currently in the object store.
type ObjectList struct {
	Keys []string `json:"keys"`
}

// SelectionRecord is one persisted best-route selection.
type SelectionRecord struct {
	ID             string    `json:"id"`
	ItineraryID    string    `json:"itineraryId"`
	Label          string    `json:"label"`
	ElapsedSeconds int64     `json:"elapsedSeconds"`
	TravelSeconds  int64     `json:"travelSeconds"`
	SourceKey      string    `json:"sourceKey"`
	CreatedAt      time.Time `json:"createdAt"`
}

// SelectionList is a list of persisted selections, newest first.
type SelectionList struct {
	Items []SelectionRecord `json:"items"`
}
