package cart

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"runtime"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/asmjr/cpu"
)

func testProgram(t *testing.T) *cpu.Program {
	prog, err := cpu.Assemble("start: li x1 \"AB\"\naddi x1 x1 1\njal zero start\n")
	require.NoError(t, err)
	return prog
}

func TestPackUncompressed(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram(t)
	program, err := prog.MarshalBinary()
	require.NoError(t, err)

	data, err := Pack(`{"author":"me"}`, []byte{1, 2, 3}, prog, false)
	require.NoError(t, err)

	assert.Equal([]byte("ECJRV004"), data[:8])
	length := binary.LittleEndian.Uint32(data[8:])
	assert.Equal(uint32(len(data)-HEADER_SIZE), length)
	assert.Equal(uint32(0), binary.LittleEndian.Uint32(data[12:]))

	// Body is three length-prefixed fields.
	body := data[HEADER_SIZE:]
	expected := []byte{0x0a, 15}
	expected = append(expected, `{"author":"me"}`...)
	expected = append(expected, 0x12, byte(len(program)))
	expected = append(expected, program...)
	expected = append(expected, 0x1a, 3, 1, 2, 3)
	assert.Equal(expected, body)

	cart, err := Unpack(data)
	require.NoError(t, err)
	assert.Equal(`{"author":"me"}`, cart.Metadata)
	assert.Equal(program, cart.Program)
	assert.Equal([]byte{1, 2, 3}, cart.VideoRom)

	decoded, err := cart.Decode()
	require.NoError(t, err)
	assert.Equal(prog.Len(), decoded.Len())
	for ip, code := range prog.Codes() {
		assert.Equal(code, decoded.Opcodes[ip].Code)
	}
}

func TestPackCompressed(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram(t)
	program, err := prog.MarshalBinary()
	require.NoError(t, err)

	vrom := bytes.Repeat([]byte{0x00, 0x10, 0x20, 0xff}, 4096)
	meta := `{"readme":"hello <world> & more"}`

	data, err := Pack(meta, vrom, prog, true)
	require.NoError(t, err)

	hdr, err := ParseHeader(data)
	require.NoError(t, err)
	assert.NotZero(hdr.Compressed)
	assert.Equal(uint32(len(data)-HEADER_SIZE), hdr.Compressed)
	assert.Less(hdr.Compressed, hdr.Length)

	// Decompress by hand, as a reader would.
	body, err := Decompress(data[HEADER_SIZE:], int(hdr.Length))
	require.NoError(t, err)
	assert.Equal(int(hdr.Length), len(body))

	cart, err := Unpack(data)
	require.NoError(t, err)
	assert.Equal(meta, cart.Metadata)
	assert.Equal(program, cart.Program)
	assert.Equal(vrom, cart.VideoRom)
}

func TestPackDefaults(t *testing.T) {
	assert := assert.New(t)

	for _, compress := range []bool{false, true} {
		data, err := Pack("", nil, &cpu.Program{}, compress)
		require.NoError(t, err)

		cart, err := Unpack(data)
		require.NoError(t, err)
		assert.Equal(DEFAULT_METADATA, cart.Metadata)
		assert.Empty(cart.VideoRom)
		assert.Equal([]byte{0, 0, 0, 0}, cart.Program)

		prog, err := cart.Decode()
		require.NoError(t, err)
		assert.Equal(0, prog.Len())
	}
}

func TestPackEmptyMetadata(t *testing.T) {
	assert := assert.New(t)

	cart, err := New("", nil, testProgram(t))
	require.NoError(t, err)
	assert.Equal(DEFAULT_METADATA, cart.Metadata)

	// Explicitly empty metadata survives when set on the cartridge itself.
	cart.Metadata = ""
	for _, compress := range []bool{false, true} {
		data, err := cart.Pack(compress)
		require.NoError(t, err)

		out, err := Unpack(data)
		require.NoError(t, err)
		assert.Equal("", out.Metadata)
		assert.Equal(cart.Program, out.Program)
	}
}

func TestUnpackErrors(t *testing.T) {
	assert := assert.New(t)

	good, err := Pack("", []byte{9}, testProgram(t), false)
	require.NoError(t, err)

	_, err = Unpack(nil)
	assert.Equal(ErrMagic, err)

	_, err = Unpack([]byte("ECJRV003\x00\x00\x00\x00\x00\x00\x00\x00"))
	assert.Equal(ErrMagic, err)

	_, err = Unpack(good[:12])
	assert.Equal(ErrTruncated, err)

	_, err = Unpack(good[:len(good)-1])
	assert.Equal(ErrBodyLength, err)

	bad := bytes.Clone(good)
	binary.LittleEndian.PutUint32(bad[12:], 5)
	_, err = Unpack(bad)
	assert.Equal(ErrBodyLength, err)

	// A field length running past the end of the body.
	bad = []byte(MAGIC)
	bad = binary.LittleEndian.AppendUint32(bad, 2)
	bad = binary.LittleEndian.AppendUint32(bad, 0)
	bad = append(bad, 0x0a, 0x05)
	_, err = Unpack(bad)
	var ebf *ErrBodyField
	if assert.True(errors.As(err, &ebf)) {
		assert.Equal(1, ebf.Field)
	}

	// Program field with the wrong wire type.
	bad = []byte(MAGIC)
	bad = binary.LittleEndian.AppendUint32(bad, 2)
	bad = binary.LittleEndian.AppendUint32(bad, 0)
	bad = append(bad, 0x10, 0x01)
	_, err = Unpack(bad)
	assert.True(errors.Is(err, ErrBodyType))

	// A huge declared length must not be allocated up front.
	small, err := Compress([]byte{1, 2, 3, 4})
	require.NoError(t, err)
	bad = []byte(MAGIC)
	bad = binary.LittleEndian.AppendUint32(bad, 0xFFFFFFF0)
	bad = binary.LittleEndian.AppendUint32(bad, uint32(len(small)))
	bad = append(bad, small...)

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	_, err = Unpack(bad)
	runtime.ReadMemStats(&after)
	assert.Equal(ErrBodyLength, err)
	assert.Less(after.TotalAlloc-before.TotalAlloc, uint64(64<<20))
}

func TestBodyLength(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		n      uint64
		length uint32
		err    error
	}){
		{0, 0, nil},
		{1234, 1234, nil},
		{math.MaxUint32, math.MaxUint32, nil},
		{math.MaxUint32 + 1, 0, ErrTooLarge},
		{1 << 40, 0, ErrTooLarge},
	}

	for _, entry := range table {
		length, err := bodyLength(entry.n)
		assert.Equal(entry.err, err, entry.n)
		assert.Equal(entry.length, length, entry.n)
	}
}

func TestDecodeBodyUnknownField(t *testing.T) {
	assert := assert.New(t)

	// field 4 varint, then field 1 "{}"
	body := []byte{0x20, 0x07, 0x0a, 0x02, '{', '}'}

	cart := &Cartridge{}
	assert.NoError(cart.decodeBody(body))
	assert.Equal("{}", cart.Metadata)
	assert.Nil(cart.Program)
}

func TestCompressRoundTrip(t *testing.T) {
	assert := assert.New(t)

	for _, src := range [][]byte{{}, []byte("a"), bytes.Repeat([]byte{7}, 1024), bytes.Repeat([]byte("ECJR"), 1000)} {
		dst, err := Compress(src)
		assert.NoError(err)
		assert.NotEmpty(dst)

		out, err := Decompress(dst, len(src))
		assert.NoError(err)
		assert.Equal(len(src), len(out))
		assert.True(bytes.Equal(src, out))
	}

	// Frames expanding past the expected size are rejected.
	dst, err := Compress(bytes.Repeat([]byte("ECJR"), 1000))
	require.NoError(t, err)
	_, err = Decompress(dst, 10)
	assert.True(errors.Is(err, zstd.ErrDecoderSizeExceeded))
}
