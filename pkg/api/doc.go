// Package api defines the stockkeeper RPC surface: procedure names, request
// and response messages, and a typed Connect client.
//
// Messages are plain Go structs carried as JSON over the Connect protocol.
// Both handlers and clients must be built with connect.WithCodec(Codec{}).
package api
