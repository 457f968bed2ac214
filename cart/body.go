package cart

import (
	"google.golang.org/protobuf/encoding/protowire"
)

const (
	FIELD_METADATA = protowire.Number(1)
	FIELD_PROGRAM  = protowire.Number(2)
	FIELD_VIDEOROM = protowire.Number(3)
)

// appendField appends a length-prefixed field. Empty fields are left out,
// as proto3 does for default values.
func appendField(body []byte, num protowire.Number, value []byte) []byte {
	if len(value) == 0 {
		return body
	}
	body = protowire.AppendTag(body, num, protowire.BytesType)
	return protowire.AppendBytes(body, value)
}

// encodeBody encodes the metadata, program and video ROM, in that order.
func (cart *Cartridge) encodeBody() (body []byte) {
	size := protowire.SizeTag(FIELD_METADATA)*3 +
		protowire.SizeBytes(len(cart.Metadata)) +
		protowire.SizeBytes(len(cart.Program)) +
		protowire.SizeBytes(len(cart.VideoRom))

	body = make([]byte, 0, size)
	body = appendField(body, FIELD_METADATA, []byte(cart.Metadata))
	body = appendField(body, FIELD_PROGRAM, cart.Program)
	body = appendField(body, FIELD_VIDEOROM, cart.VideoRom)

	return
}

// decodeBody replaces the cartridge contents with the decoded body.
// Unknown fields are skipped; a repeated field keeps its last value.
func (cart *Cartridge) decodeBody(body []byte) (err error) {
	*cart = Cartridge{}

	for len(body) > 0 {
		num, typ, n := protowire.ConsumeTag(body)
		if n < 0 {
			err = &ErrBodyField{Field: int(num), Err: protowire.ParseError(n)}
			return
		}
		body = body[n:]

		var value []byte
		switch num {
		case FIELD_METADATA, FIELD_PROGRAM, FIELD_VIDEOROM:
			if typ != protowire.BytesType {
				err = &ErrBodyField{Field: int(num), Err: ErrBodyType}
				return
			}
			value, n = protowire.ConsumeBytes(body)
		default:
			n = protowire.ConsumeFieldValue(num, typ, body)
		}
		if n < 0 {
			err = &ErrBodyField{Field: int(num), Err: protowire.ParseError(n)}
			return
		}
		body = body[n:]

		switch num {
		case FIELD_METADATA:
			cart.Metadata = string(value)
		case FIELD_PROGRAM:
			cart.Program = append([]byte(nil), value...)
		case FIELD_VIDEOROM:
			cart.VideoRom = append([]byte(nil), value...)
		}
	}

	return
}
