package types

// ComponentMetadata defines the essential identifying information for components within the system.
// It is attached to every log line and telemetry callback a component emits.
type ComponentMetadata struct {
	ID   string // Unique identifier for the component.
	Type string // Type of the component, e.g. "ORCHESTRATOR" or "EXPORTER".
	Name string // Human-readable name for the component.
}

// Option defines a configuration option function applicable to any component T. This generic approach
// allows for flexible configuration mechanisms across different types of components.
type Option[T any] func(T)

// Component is implemented by everything that carries metadata, loggers and sensors.
type Component interface {
	GetComponentMetadata() ComponentMetadata
	SetComponentMetadata(name string, id string)
	ConnectLogger(...Logger)
	ConnectSensor(...Sensor)
}
