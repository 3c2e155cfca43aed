package logging

// Standardized structured logging keys.
const (
	FieldComponent     = "component"
	FieldEventType     = "event_type"
	FieldErrorHint     = "error_hint"
	FieldImpact        = "impact"
	FieldErrorKind     = "error_kind"
	FieldCorrelationID = "correlation_id"
	FieldStage         = "stage"
	FieldAlbum         = "album"
	FieldPhoto         = "photo"
	FieldTag           = "tag"
	FieldPath          = "path"
	FieldCount         = "count"
	FieldDuration      = "duration"
)
