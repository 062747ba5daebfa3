// Package exporter scales a finished track onto the uint16 range and writes the manifest and
// packed data blob, plus optional compressed and tabular copies, to one or more sinks.
//
// The blob is the concatenation of volume, balance, width, the centroid matrix (row-major),
// centroid indexes and pitch, each value a little-endian uint16. The manifest's structure section
// gives the [rows, cols] of every field in that order. A silent track produces a manifest that
// only carries the allquietsamples flag and no blob.
package exporter

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/joeydtaylor/audiovis/pkg/internal/types"
	"github.com/joeydtaylor/audiovis/pkg/internal/utils"
	"github.com/joeydtaylor/audiovis/pkg/logschema"
)

// Content types of the produced artifacts.
const (
	ContentTypeManifest = "application/json"
	ContentTypeData     = "application/octet-stream"
	ContentTypeParquet  = "application/vnd.apache.parquet"
)

// ErrNoSinks is returned by Export when nothing is configured to receive the artifacts.
var ErrNoSinks = errors.New("exporter: no artifact sinks configured")

// Exporter serializes tracks.
type Exporter struct {
	componentMetadata types.ComponentMetadata

	scaleRange         int
	compression        string
	parquet            bool
	parquetCompression string

	sinks     []types.ArtifactSink
	notifiers []types.Notifier

	loggers     []types.Logger
	loggersLock sync.Mutex
	sensors     []types.Sensor
	sensorsLock sync.Mutex
}

// NewExporter creates an exporter writing the full 16-bit range.
func NewExporter(options ...types.Option[*Exporter]) *Exporter {
	e := &Exporter{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "EXPORTER",
		},
		scaleRange: 65535,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// ManifestName returns the manifest artifact name for a track.
func ManifestName(track string) string {
	return track + "_analysis.json"
}

// DataName returns the raw data artifact name for a track.
func DataName(track string) string {
	return track + "_analysis.data"
}

// FramesName returns the frame table artifact name for a track.
func FramesName(track string) string {
	return track + "_frames.parquet"
}

// Artifacts builds every artifact for the track without storing anything.
func (e *Exporter) Artifacts(t *types.Track) ([]types.Artifact, error) {
	if t == nil {
		return nil, fmt.Errorf("exporter: nil track")
	}
	if t.AllQuiet {
		body, err := BuildManifest(t, Scaled{}, e.scaleRange, "").Marshal()
		if err != nil {
			return nil, err
		}
		return []types.Artifact{{Name: ManifestName(t.Name), ContentType: ContentTypeManifest, Body: body}}, nil
	}

	scaled := Scale(t, e.scaleRange)
	manifest, err := BuildManifest(t, scaled, e.scaleRange, e.compression).Marshal()
	if err != nil {
		return nil, err
	}
	data := Encode(scaled.Pack())

	out := []types.Artifact{
		{Name: ManifestName(t.Name), ContentType: ContentTypeManifest, Body: manifest},
		{Name: DataName(t.Name), ContentType: ContentTypeData, Body: data},
	}
	if e.compression != CompressNone {
		packed, err := Compress(data, e.compression)
		if err != nil {
			return nil, fmt.Errorf("exporter: %s: %w", e.compression, err)
		}
		out = append(out, types.Artifact{
			Name:        DataName(t.Name) + CompressionSuffix(e.compression),
			ContentType: ContentTypeData,
			Body:        packed,
		})
	}
	if e.parquet {
		table, err := EncodeFrameTable(FrameRows(t), e.parquetCompression)
		if err != nil {
			return nil, fmt.Errorf("exporter: frame table: %w", err)
		}
		out = append(out, types.Artifact{Name: FramesName(t.Name), ContentType: ContentTypeParquet, Body: table})
	}
	return out, nil
}

// Export stores every artifact in every sink, then announces the manifest to the notifiers.
// It returns the stored locations in artifact order.
func (e *Exporter) Export(ctx context.Context, t *types.Track) ([]string, error) {
	if len(e.sinks) == 0 {
		return nil, ErrNoSinks
	}
	artifacts, err := e.Artifacts(t)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	var locations []string
	for _, a := range artifacts {
		for _, sink := range e.sinks {
			loc, err := sink.Put(ctx, a)
			if err != nil {
				for _, s := range e.snapshotSensors() {
					s.InvokeOnArtifactError(e.componentMetadata, a.Name, err)
				}
				e.NotifyLoggers(types.ErrorLevel, "artifact store failed",
					logschema.FieldComponent, e.componentMetadata,
					logschema.FieldEvent, logschema.EventArtifactError,
					logschema.FieldTrack, t.Name,
					"artifact", a.Name,
					logschema.FieldError, err,
				)
				return locations, fmt.Errorf("exporter: store %s: %w", a.Name, err)
			}
			locations = append(locations, loc)
			for _, s := range e.snapshotSensors() {
				s.InvokeOnArtifactStored(e.componentMetadata, loc, len(a.Body))
			}
			e.NotifyLoggers(types.DebugLevel, "artifact stored",
				logschema.FieldComponent, e.componentMetadata,
				logschema.FieldEvent, logschema.EventArtifactStored,
				logschema.FieldTrack, t.Name,
				logschema.FieldLocation, loc,
				logschema.FieldBytes, len(a.Body),
			)
		}
	}

	for _, n := range e.notifiers {
		if err := n.Notify(ctx, t.Name, artifacts[0].Body); err != nil {
			e.NotifyLoggers(types.WarnLevel, "export notification failed",
				logschema.FieldComponent, e.componentMetadata,
				logschema.FieldEvent, logschema.EventNotify,
				logschema.FieldTrack, t.Name,
				logschema.FieldError, err,
			)
			return locations, fmt.Errorf("exporter: notify: %w", err)
		}
	}

	e.NotifyLoggers(types.InfoLevel, "track exported",
		logschema.FieldComponent, e.componentMetadata,
		logschema.FieldEvent, logschema.EventTrackComplete,
		logschema.FieldTrack, t.Name,
		"artifacts", len(artifacts),
		"silent", t.AllQuiet,
		logschema.FieldElapsed, time.Since(start),
	)
	return locations, nil
}
