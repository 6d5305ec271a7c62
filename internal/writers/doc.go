// Package writers turns labelled calls into serialized outputs.
//
// Design:
//   • Writers own all presentation knowledge (TSV/JSON/JSONL).
//   • Replay stays domain-only; duo and pipeline stay orchestration-only.
//   • JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
