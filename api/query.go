package api

import "encoding/json"

type SavedQuery struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	DataType      string          `json:"data_type,omitempty"`
	SearchRequest json.RawMessage `json:"search_request,omitempty"`
	TimeRange     json.RawMessage `json:"time_range,omitempty"`
	Tags          []string        `json:"tags,omitempty"`
	Deleted       bool            `json:"deleted,omitempty"`
	Created       *AuditStamp     `json:"created,omitempty"`
	Modified      *AuditStamp     `json:"modified,omitempty"`
}

type CreateSavedQueryParams struct {
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	DataType      string          `json:"data_type,omitempty"`
	SearchRequest json.RawMessage `json:"search_request,omitempty"`
	TimeRange     json.RawMessage `json:"time_range,omitempty"`
	Tags          []string        `json:"tags,omitempty"`
}

type UpdateSavedQueryParams struct {
	Name          string          `json:"name,omitempty"`
	Description   string          `json:"description,omitempty"`
	DataType      string          `json:"data_type,omitempty"`
	SearchRequest json.RawMessage `json:"search_request,omitempty"`
	TimeRange     json.RawMessage `json:"time_range,omitempty"`
	Tags          []string        `json:"tags,omitempty"`
}
