package codec

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDiscoverFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"song_drums.wav", "song.wav", "song_bass.wav", "other.wav", "song_notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "song_dir.wav"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, err := Discover(dir, "song", 0)
	if err != nil {
		t.Fatalf("Discover error: %v", err)
	}
	want := []string{filepath.Join(dir, "song_bass.wav"), filepath.Join(dir, "song_drums.wav")}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	all, err := Discover(dir, "", 2)
	if err != nil {
		t.Fatalf("Discover error: %v", err)
	}
	if len(all) != 2 || filepath.Base(all[0]) != "other.wav" || filepath.Base(all[1]) != "song.wav" {
		t.Fatalf("unexpected unprefixed listing: %v", all)
	}
}

func TestDiscoverMissingDir(t *testing.T) {
	if _, err := Discover(filepath.Join(t.TempDir(), "nope"), "", 0); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
