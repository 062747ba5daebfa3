package internallogger

import (
	"github.com/joeydtaylor/audiovis/pkg/internal/types"
	"go.uber.org/zap/zapcore"
)

// componentMarshaler writes component metadata as {"id","type","name"}, omitting an empty name.
type componentMarshaler types.ComponentMetadata

func (c componentMarshaler) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("id", c.ID)
	enc.AddString("type", c.Type)
	if c.Name != "" {
		enc.AddString("name", c.Name)
	}
	return nil
}
