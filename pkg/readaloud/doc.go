// Package readaloud provides a Go client for the Edge "read aloud"
// streaming speech-synthesis service.
//
// # Protocol
//
// The service speaks a framed sub-protocol over a single WebSocket
// connection. One synthesis session is one connection:
//
//  1. Dial the endpoint with the trusted-client token, a fresh
//     ConnectionId and a rotating Sec-MS-GEC session proof in the query
//     string, plus a cookie carrying a generated device identifier.
//  2. Send a text frame with Path: speech.config selecting the output
//     codec and disabling boundary metadata.
//  3. Send a text frame with Path: ssml carrying the escaped input text
//     wrapped in voice/prosody markup.
//  4. Read frames until a text frame containing Path:turn.end arrives.
//     Binary frames whose header block contains Path:audio carry the
//     next chunk of encoded audio; all payload bytes are emitted in
//     receive order.
//
// A peer close before turn.end is treated as a normal end of stream,
// because some backend nodes close right after the last audio chunk.
//
// # Quick Start
//
//	client := readaloud.NewClient()
//	result, err := client.Synthesize(ctx, &readaloud.SpeakRequest{
//		Text:  "Hello, world",
//		Voice: "en-US-AriaNeural",
//	})
//	// result.Audio holds the complete MP3 stream.
//
// For incremental consumption use [Client.SynthesizeStream], which
// yields audio chunks as they are received.
package readaloud
