package exporter

import (
	"encoding/json"
	"path/filepath"
	"strings"
)

// FileListName is the index artifact naming every analysed recording of a session.
const FileListName = "_analysis_files.json"

// FileList groups the recordings analysed alongside one master mix.
type FileList struct {
	MasterFile string   `json:"mp3file"`
	AudioFiles []string `json:"audiofiles"`
}

// MarshalFileList encodes the index as a one-element array, indented by two spaces.
func MarshalFileList(master string, tracks []string) ([]byte, error) {
	if tracks == nil {
		tracks = []string{}
	}
	return json.MarshalIndent([]FileList{{MasterFile: master, AudioFiles: tracks}}, "", "  ")
}

// MasterName returns the compressed master mix name for a recording path.
func MasterName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".mp3"
}
