package codec

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joeydtaylor/audiovis/pkg/internal/utils"
)

// DefaultDiscoverLimit caps how many recordings one directory scan returns.
const DefaultDiscoverLimit = 100

// Discover lists the .wav files in dir whose names start with prefix, in name order. The master
// mix named prefix+".wav" is left out. A limit below 1 uses DefaultDiscoverLimit.
func Discover(dir, prefix string, limit int) ([]string, error) {
	if limit < 1 {
		limit = DefaultDiscoverLimit
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	files := utils.Filter(entries, func(e os.DirEntry) bool {
		return !e.IsDir() && e.Type().IsRegular()
	})
	names := utils.Map(files, func(e os.DirEntry) string { return e.Name() })
	master := prefix + ".wav"
	names = utils.Filter(names, func(name string) bool {
		return strings.EqualFold(filepath.Ext(name), ".wav") &&
			strings.HasPrefix(name, prefix) &&
			(prefix == "" || name != master)
	})
	if len(names) > limit {
		names = names[:limit]
	}
	return utils.Map(names, func(name string) string { return filepath.Join(dir, name) }), nil
}
