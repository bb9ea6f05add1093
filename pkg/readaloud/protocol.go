package readaloud

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
	"time"
)

// ================== Frame format ==================
//
// Text frame:
//   header lines ("Name:Value", CRLF separated)
//   CRLF
//   body
//
// Binary frame:
//   2 bytes  big-endian uint16 header length H
//   H bytes  UTF-8 header block (colon-delimited lines)
//   rest     payload

const (
	pathSpeechConfig = "speech.config"
	pathSSML         = "ssml"
	pathAudio        = "audio"
	pathTurnEnd      = "Path:turn.end"

	// timestampLayout mimics the JavaScript Date string the service
	// expects in X-Timestamp headers.
	timestampLayout = "Mon Jan 02 2006 15:04:05 GMT+0000 (Coordinated Universal Time)"
)

// textFrame builds an outgoing text frame. requestID may be empty for
// connection-scoped frames such as speech.config.
func textFrame(path, requestID, contentType, body string) []byte {
	var b strings.Builder
	if requestID != "" {
		b.WriteString("X-RequestId:" + requestID + "\r\n")
	}
	b.WriteString("Content-Type:" + contentType + "\r\n")
	b.WriteString("X-Timestamp:" + time.Now().UTC().Format(timestampLayout) + "\r\n")
	b.WriteString("Path:" + path + "\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

// binaryFrame is a parsed incoming binary frame.
type binaryFrame struct {
	headers map[string]string
	payload []byte
}

// isAudio reports whether the frame carries an audio payload.
func (f *binaryFrame) isAudio() bool {
	return f.headers["Path"] == pathAudio
}

// parseBinaryFrame parses a binary message into header block and payload.
//
// A frame shorter than the length prefix is a protocol violation. A frame
// whose declared header length exceeds the available bytes is reported as
// errTruncatedFrame; callers skip it and keep reading.
func parseBinaryFrame(data []byte) (*binaryFrame, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("binary frame too short: %d bytes", len(data))
	}

	headerLen := int(binary.BigEndian.Uint16(data[:2]))
	if headerLen > len(data)-2 {
		return nil, errTruncatedFrame
	}

	return &binaryFrame{
		headers: parseFrameHeaders(data[2 : 2+headerLen]),
		payload: data[2+headerLen:],
	}, nil
}

// parseFrameHeaders parses a colon-delimited header block. Lines without
// a colon are ignored.
func parseFrameHeaders(block []byte) map[string]string {
	headers := make(map[string]string)
	for _, line := range bytes.Split(block, []byte("\r\n")) {
		name, value, ok := bytes.Cut(line, []byte(":"))
		if !ok {
			continue
		}
		headers[string(bytes.TrimSpace(name))] = string(bytes.TrimSpace(value))
	}
	return headers
}

// isTurnEnd reports whether a text message closes the current turn.
// Only the literal marker matters; all other text traffic is ignorable
// bookkeeping.
func isTurnEnd(data []byte) bool {
	return bytes.Contains(data, []byte(pathTurnEnd))
}

// escapeXML escapes the five standard XML entities for embedding text
// in the markup request.
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// buildSSML wraps escaped text in voice selection and prosody markup.
func buildSSML(req *SpeakRequest) string {
	var b strings.Builder
	b.WriteString(`<speak version='1.0' xmlns='http://www.w3.org/2001/10/synthesis' xml:lang='en-US'>`)
	b.WriteString(`<voice name='` + req.Voice + `'>`)
	b.WriteString(fmt.Sprintf(`<prosody pitch='%s' rate='%s' volume='%s'>`,
		req.pitchOrDefault(), req.rateOrDefault(), req.volumeOrDefault()))
	b.WriteString(xmlEscaper.Replace(req.Text))
	b.WriteString(`</prosody></voice></speak>`)
	return b.String()
}

// speechConfigBody is the JSON body of the speech.config frame. Word and
// sentence boundary metadata are disabled; only audio frames matter here.
func speechConfigBody(outputFormat string) string {
	return fmt.Sprintf(`{"context":{"synthesis":{"audio":{"metadataoptions":`+
		`{"sentenceBoundaryEnabled":"false","wordBoundaryEnabled":"false"},`+
		`"outputFormat":%q}}}}`, outputFormat)
}
