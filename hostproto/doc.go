// Package hostproto speaks the line-oriented JSONL protocol between an
// external host and an application object.
//
// The host drives the exchange: host.hello opens the session, host.tick
// advances it, host.stop ends it. Every reply is one canonically
// serialized JSON line, flushed immediately. Any malformed,
// out-of-sequence, or truncated inbound message is fatal to the loop.
package hostproto
