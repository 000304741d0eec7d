// Package writers turns decoded organisms into serialized outputs.
//
// Design:
//   - Writers own all presentation knowledge (text blocks, JSON, JSONL).
//   - Decoding stays in morphogen-core; the app only feeds channels.
//   - JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
