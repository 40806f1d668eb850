package testutil

import (
	"encoding/binary"
	"testing"
)

// GeneratePCM creates n frames of silent 16-bit mono PCM test data
func GeneratePCM(n int) []byte {
	return make([]byte, n*2)
}

// TaggedMessage builds a chat reply containing one foreign-word tag
func TaggedMessage(word, translation string) string {
	return "Try saying <foreign>[" + word + "]==[" + translation + "]</foreign> today!"
}

// AssertWAVHeader checks the fixed fields of a 44-byte WAV header
func AssertWAVHeader(t *testing.T, wav []byte, payloadLen, sampleRate, channels, bitDepth int) {
	t.Helper()

	if len(wav) != 44+payloadLen {
		t.Fatalf("Expected %d total bytes, got %d", 44+payloadLen, len(wav))
	}
	if string(wav[0:4]) != "RIFF" {
		t.Errorf("Expected RIFF magic, got %q", wav[0:4])
	}
	if got := binary.LittleEndian.Uint32(wav[4:8]); got != uint32(36+payloadLen) {
		t.Errorf("Expected chunk size %d, got %d", 36+payloadLen, got)
	}
	if string(wav[8:12]) != "WAVE" {
		t.Errorf("Expected WAVE magic, got %q", wav[8:12])
	}
	if got := binary.LittleEndian.Uint16(wav[22:24]); got != uint16(channels) {
		t.Errorf("Expected %d channels, got %d", channels, got)
	}
	if got := binary.LittleEndian.Uint32(wav[24:28]); got != uint32(sampleRate) {
		t.Errorf("Expected sample rate %d, got %d", sampleRate, got)
	}
	if got := binary.LittleEndian.Uint16(wav[34:36]); got != uint16(bitDepth) {
		t.Errorf("Expected bit depth %d, got %d", bitDepth, got)
	}
	if got := binary.LittleEndian.Uint32(wav[40:44]); got != uint32(payloadLen) {
		t.Errorf("Expected data length %d, got %d", payloadLen, got)
	}
}
