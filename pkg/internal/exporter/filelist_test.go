package exporter

import "testing"

func TestMarshalFileList(t *testing.T) {
	got, err := MarshalFileList("song.mp3", []string{"song_bass.wav", "song_drums.wav"})
	if err != nil {
		t.Fatalf("MarshalFileList error: %v", err)
	}
	want := "[\n  {\n    \"mp3file\": \"song.mp3\",\n    \"audiofiles\": [\n      \"song_bass.wav\",\n      \"song_drums.wav\"\n    ]\n  }\n]"
	if string(got) != want {
		t.Fatalf("unexpected listing:\n%s", got)
	}

	empty, err := MarshalFileList("", nil)
	if err != nil {
		t.Fatalf("MarshalFileList error: %v", err)
	}
	if string(empty) != "[\n  {\n    \"mp3file\": \"\",\n    \"audiofiles\": []\n  }\n]" {
		t.Fatalf("unexpected empty listing:\n%s", empty)
	}
}

func TestMasterName(t *testing.T) {
	if got := MasterName("/tmp/mix/song.wav"); got != "song.mp3" {
		t.Fatalf("expected song.mp3, got %s", got)
	}
}
