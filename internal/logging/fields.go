package logging

import "github.com/rs/zerolog"

// Common structured log field keys to keep logs searchable/consistent.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldRequestID  = "request_id"
	FieldPath       = "path"
	FieldMethod     = "method"
	FieldStatusCode = "status_code"
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"
	FieldOperation  = "operation"
	FieldEventID    = "event_id"
	FieldTeamID     = "team_id"
	FieldPlayerID   = "player_id"
	FieldKey        = "key"
)

// WithCommon appends service/version fields when provided.
func WithCommon(ctx zerolog.Context, service, version string) zerolog.Context {
	if service != "" {
		ctx = ctx.Str(FieldService, service)
	}
	if version != "" {
		ctx = ctx.Str(FieldVersion, version)
	}
	return ctx
}
