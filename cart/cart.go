// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cart

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/ezrec/asmjr/cpu"
)

const (
	MAGIC       = "ECJRV004" // Cartridge tag and format version.
	HEADER_SIZE = len(MAGIC) + 4 + 4

	DEFAULT_METADATA = "{}"
)

// Header is the fixed-size start of a cartridge.
type Header struct {
	Length     uint32 // Length of the encoded body.
	Compressed uint32 // Length of the compressed body, 0 if not compressed.
}

// ParseHeader checks the cartridge tag and reads the body lengths.
func ParseHeader(data []byte) (hdr Header, err error) {
	if len(data) < len(MAGIC) || !bytes.Equal(data[:len(MAGIC)], []byte(MAGIC)) {
		err = ErrMagic
		return
	}
	if len(data) < HEADER_SIZE {
		err = ErrTruncated
		return
	}

	hdr.Length = binary.LittleEndian.Uint32(data[len(MAGIC):])
	hdr.Compressed = binary.LittleEndian.Uint32(data[len(MAGIC)+4:])

	return
}

// Cartridge is the contents of a cartridge.
type Cartridge struct {
	Metadata string // JSON metadata text.
	Program  []byte // Serialized program.
	VideoRom []byte // Video ROM bytes.
}

// New creates a cartridge for an assembled program.
//
// Empty metadata means none was given, and is replaced by DEFAULT_METADATA.
// A cartridge with truly empty metadata can be built as a Cartridge literal;
// its metadata field is then left out of the body and unpacks as "".
func New(metadata string, videoRom []byte, prog *cpu.Program) (cart *Cartridge, err error) {
	if len(metadata) == 0 {
		metadata = DEFAULT_METADATA
	}

	program, err := prog.MarshalBinary()
	if err != nil {
		return
	}

	cart = &Cartridge{
		Metadata: metadata,
		Program:  program,
		VideoRom: videoRom,
	}

	return
}

// bodyLength checks that a body of n bytes fits a header length field.
func bodyLength(n uint64) (length uint32, err error) {
	if n > math.MaxUint32 {
		err = ErrTooLarge
		return
	}
	length = uint32(n)
	return
}

// Pack encodes the cartridge, optionally compressing its body.
func (cart *Cartridge) Pack(compress bool) (data []byte, err error) {
	body := cart.encodeBody()

	var hdr Header
	hdr.Length, err = bodyLength(uint64(len(body)))
	if err != nil {
		return
	}
	if compress {
		body, err = Compress(body)
		if err != nil {
			return
		}
		hdr.Compressed, err = bodyLength(uint64(len(body)))
		if err != nil {
			return
		}
	}

	data = make([]byte, 0, HEADER_SIZE+len(body))
	data = append(data, MAGIC...)
	data = binary.LittleEndian.AppendUint32(data, hdr.Length)
	data = binary.LittleEndian.AppendUint32(data, hdr.Compressed)
	data = append(data, body...)

	return
}

// Unpack decodes a packed cartridge.
func Unpack(data []byte) (cart *Cartridge, err error) {
	hdr, err := ParseHeader(data)
	if err != nil {
		return
	}

	body := data[HEADER_SIZE:]
	if hdr.Compressed != 0 {
		if uint64(len(body)) != uint64(hdr.Compressed) {
			err = ErrBodyLength
			return
		}
		body, err = Decompress(body, int(hdr.Length))
		if err != nil {
			return
		}
	}
	if uint64(len(body)) != uint64(hdr.Length) {
		err = ErrBodyLength
		return
	}

	cart = &Cartridge{}
	err = cart.decodeBody(body)
	if err != nil {
		cart = nil
	}

	return
}

// Decode deserializes the cartridge program.
func (cart *Cartridge) Decode() (prog *cpu.Program, err error) {
	prog = &cpu.Program{}
	err = prog.UnmarshalBinary(cart.Program)
	if err != nil {
		prog = nil
	}
	return
}

// Pack packs an assembled program, metadata and video ROM into a cartridge.
// Empty metadata is replaced by DEFAULT_METADATA, as for New.
func Pack(metadata string, videoRom []byte, prog *cpu.Program, compress bool) (data []byte, err error) {
	cart, err := New(metadata, videoRom, prog)
	if err != nil {
		return
	}

	return cart.Pack(compress)
}
