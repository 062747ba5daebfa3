package logschema

// Log schema constants for audiovis structured logs.
const (
	SchemaID    = "audiovis.log.v1"
	FieldSchema = "log_schema"

	FieldTimestamp = "ts"
	FieldLevel     = "level"
	FieldMessage   = "msg"
	FieldLogger    = "logger"
	FieldCaller    = "caller"
	FieldStack     = "stack"

	FieldComponent = "component"
	FieldEvent     = "event"
	FieldError     = "error"

	FieldTrack    = "track"
	FieldChunk    = "chunk"
	FieldStage    = "stage"
	FieldFrames   = "frames"
	FieldElapsed  = "elapsed"
	FieldLocation = "location"
	FieldBytes    = "bytes"
)

// Event names shared by components.
const (
	EventAnalyze        = "Analyze"
	EventChunkStart     = "ChunkStart"
	EventChunkComplete  = "ChunkComplete"
	EventChunkError     = "ChunkError"
	EventStageStart     = "StageStart"
	EventStageComplete  = "StageComplete"
	EventStageError     = "StageError"
	EventTrackComplete  = "TrackComplete"
	EventTrackSilent    = "TrackSilent"
	EventTrackError     = "TrackError"
	EventArtifactStored = "ArtifactStored"
	EventArtifactError  = "ArtifactError"
	EventPutObject      = "PutObject"
	EventNotify         = "Notify"
	EventMeterReport    = "MeterReport"
)

// LogRecord is a generic map representation of a log entry.
type LogRecord map[string]interface{}
