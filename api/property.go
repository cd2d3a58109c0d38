package api

import "encoding/json"

// Property names a saved-query attribute whose distinct values can be listed.
type Property string

const (
	PropertyTags       Property = "tags"
	PropertyCreatedBy  Property = "created_by"
	PropertyModifiedBy Property = "modified_by"
	PropertyDataType   Property = "data_type"
)

func (p Property) Valid() bool {
	switch p {
	case PropertyTags, PropertyCreatedBy, PropertyModifiedBy, PropertyDataType:
		return true
	}
	return false
}

// PropertyValues maps each requested property to the backend's payload for
// it, usually a JSON array of distinct values. Payloads are kept as received.
type PropertyValues map[Property]json.RawMessage
