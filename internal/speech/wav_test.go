package speech

import (
	"bytes"
	"testing"
)

func TestWrapExtractRoundTrip(t *testing.T) {
	pcm := bytes.Repeat([]byte{0xAB, 0xCD}, 1000)

	wav := wrapWAV(pcm)
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		t.Fatal("missing RIFF/WAVE magic")
	}

	got, err := extractPCM(wav)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !bytes.Equal(got, pcm) {
		t.Fatal("round trip mangled PCM")
	}
}

func TestExtractPCMRejectsGarbage(t *testing.T) {
	if _, err := extractPCM([]byte("too short")); err == nil {
		t.Fatal("expected error for short data")
	}

	garbage := bytes.Repeat([]byte{0x00}, 100)
	if _, err := extractPCM(garbage); err == nil {
		t.Fatal("expected error for non-WAV data")
	}
}
