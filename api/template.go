package api

import "encoding/json"

// AuditStamp records who touched a resource and when (unix seconds).
type AuditStamp struct {
	At int64  `json:"at,omitempty"`
	By string `json:"by,omitempty"`
}

type QueryTemplate struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	DataType      string          `json:"data_type,omitempty"`
	SearchRequest json.RawMessage `json:"search_request,omitempty"`
	Tags          []string        `json:"tags,omitempty"`
	Deleted       bool            `json:"deleted,omitempty"`
	Created       *AuditStamp     `json:"created,omitempty"`
	Modified      *AuditStamp     `json:"modified,omitempty"`
}

type CreateQueryTemplate struct {
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	DataType      string          `json:"data_type,omitempty"`
	SearchRequest json.RawMessage `json:"search_request,omitempty"`
	Tags          []string        `json:"tags,omitempty"`
}

// UpdateQueryTemplate overwrites the fields that are set; empty fields are left out of the payload.
type UpdateQueryTemplate struct {
	Name          string          `json:"name,omitempty"`
	Description   string          `json:"description,omitempty"`
	DataType      string          `json:"data_type,omitempty"`
	SearchRequest json.RawMessage `json:"search_request,omitempty"`
	Tags          []string        `json:"tags,omitempty"`
}
