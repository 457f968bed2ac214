// Package cart packs assembled programs into ECJR cartridges.
//
// A cartridge is a fixed 16 byte header followed by a body:
//
//	[8 bytes: "ECJRV004"]
//	[4 bytes: LE u32 length of the encoded body]
//	[4 bytes: LE u32 length of the compressed body, 0 if not compressed]
//	[body]
//
// The encoded body is a protobuf message of three length-prefixed fields:
// metadata text (1), serialized program (2) and video ROM (3). When
// compressed, the whole encoded body is a single zstd frame.
package cart
