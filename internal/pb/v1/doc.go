// Package pb defines the wire contract of the focus beacon.
//
// Messages travel as google.protobuf.Struct values so that the gRPC control
// API, the HTTP status body and the on-disk state file share one JSON shape:
//
//	{"distracted": true, "timestamp": "2025-01-02T15:04:05Z", "last_actor": {"hostname": "...", "username": "..."}}
//
// The typed Go messages below convert to and from that shape and expose
// nil-safe getters.
package pb
