// Package audio turns the base64 payload browsers record into bytes suitable
// for a multipart upload.
package audio

import (
	"encoding/base64"
	"strings"

	"voicelog-go/internal/fault"
)

// DefaultFormat is what browser MediaRecorder produces when the caller sends
// no format tag.
const DefaultFormat = "webm"

var knownFormats = map[string]bool{
	"webm": true, "wav": true, "mp3": true, "mp4": true,
	"m4a": true, "ogg": true, "flac": true,
}

// Decode converts a base64 string into raw audio bytes. Empty input is an
// input fault, not a decoding fault: the caller sent nothing, so decode was
// never attempted.
func Decode(encoded string) ([]byte, error) {
	if strings.TrimSpace(encoded) == "" {
		return nil, fault.Inputf("no audio data provided")
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fault.Decodingf(err, "audio payload is not valid base64")
	}
	if len(data) == 0 {
		return nil, fault.Inputf("audio payload decoded to zero bytes")
	}
	return data, nil
}

// NormalizeFormat returns a usable format tag: the caller's tag lowercased
// when recognized, DefaultFormat otherwise.
func NormalizeFormat(format string) string {
	f := strings.ToLower(strings.TrimSpace(format))
	if knownFormats[f] {
		return f
	}
	return DefaultFormat
}
