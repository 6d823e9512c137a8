package model

import "time"

// Change is one entry in the append-only change log. Changes are never
// modified or deleted once appended.
type Change struct {
	ID            string                 `json:"id"`
	TargetID      string                 `json:"targetId"`
	ChangeType    ChangeType             `json:"changeType"`
	DetectedAt    time.Time              `json:"detectedAt"`
	CorrelationID string                 `json:"correlationId,omitempty"`
	Initiator     string                 `json:"initiator,omitempty"`
	InitiatorType string                 `json:"initiatorType,omitempty"`
	DetectedVia   DetectedVia            `json:"detectedVia"`
	Field         string                 `json:"field,omitempty"`
	PreviousValue *string                `json:"previousValue,omitempty"`
	NewValue      *string                `json:"newValue,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

// StrPtr is a small helper for populating Change.PreviousValue/NewValue
// from a stringified field value.
func StrPtr(s string) *string { return &s }
