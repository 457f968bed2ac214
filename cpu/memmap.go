package cpu

import (
	"iter"
	"strconv"

	"github.com/ezrec/asmjr/internal"
)

// MEMMAP lists the memory-mapped I/O registers, in address order.
// Each is visible to the assembler as the constant '$NAME'.
var MEMMAP = []string{
	"TEXT_ENABLE",
	"TEXT_CHAR_OFFSET",
	"TEXT_BUFFER_ADDR",
	"TEXT_BUFFER_LEN",
	"COLOR_BUFFER_ADDR",
	"COLOR_BUFFER_LEN",
	"ROM_BANK",
	"VIDEO_ENABLE",
	"VIDEO_COLORMAP_ADDR",
	"VIDEO_SPRITE_BUFFER_ADDR",
	"VIDEO_SPRITE_COUNT",
	"AUDIO_ENABLE",
	"AUDIO_BUFF_ADDR",
	"AUDIO_BUFF_END",
	"AUDIO_BUFF_POS",
	"AUDIO_AMP",
	"AUDIO_STRIDE",
	"AUDIO_WRAP",
	"NET_RECV_STATUS",
	"NET_RECV_BUFFER_ADDR",
	"NET_RECV_BUFFER_LEN",
	"NET_SEND_STATUS",
	"NET_SEND_BUFFER_ADDR",
	"NET_SEND_BUFFER_LEN",
	"INPUT_MOUSE_X",
	"INPUT_MOUSE_Y",
	"INPUT_MOUSE_BUTTON",
	"INPUT_TEXTCHAR",
	"INPUT_REALTIME",
	"ARR_INPUT_GAMEPADS",
}

// MemoryMap returns the memory-mapped I/O constants and their addresses.
func MemoryMap() iter.Seq2[string, float64] {
	names := make([]string, len(MEMMAP))
	for n, name := range MEMMAP {
		names[n] = "$" + name
	}
	return internal.IterSeq2Indexed(names, func(n int) float64 { return float64(n) })
}

const (
	REGISTER_COUNT = 256 // Number of addressable registers.
	TEMP_FIRST     = 5   // Register of alias t0.
	TEMP_COUNT     = 11  // Aliases t0 through t10.
)

// sysAlias are the named registers.
var sysAlias = map[string]uint8{
	"zero": 0,
	"ra":   1,
	"sp":   2,
	"gp":   3,
	"tp":   4,
}

// registerNames returns the xN and tN register aliases.
func registerNames() iter.Seq2[string, uint8] {
	xnames := make([]string, REGISTER_COUNT)
	for n := range xnames {
		xnames[n] = "x" + strconv.Itoa(n)
	}
	tnames := make([]string, TEMP_COUNT)
	for n := range tnames {
		tnames[n] = "t" + strconv.Itoa(n)
	}
	return internal.IterSeq2Concat(
		internal.IterSeq2Indexed(xnames, func(n int) uint8 { return uint8(n) }),
		internal.IterSeq2Indexed(tnames, func(n int) uint8 { return uint8(TEMP_FIRST + n) }),
	)
}
