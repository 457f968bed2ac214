package cart

import (
	"bytes"
	"encoding/json"
	"time"
)

const (
	DEFAULT_AUTHOR = "Anonymous"
	DEFAULT_README = "Exported by asmjr"
	TOOLCHAIN      = "asmjr"
	DATE_FORMAT    = "2006-01-02 15:04:05"
)

// formatDate formats a UTC timestamp with no, 3, 6 or 9 fraction digits,
// the fewest that hold its nanoseconds exactly.
func formatDate(t time.Time) string {
	t = t.UTC()

	var fraction string
	switch ns := t.Nanosecond(); {
	case ns == 0:
	case ns%1_000_000 == 0:
		fraction = ".000"
	case ns%1_000 == 0:
		fraction = ".000000"
	default:
		fraction = ".000000000"
	}

	return t.Format(DATE_FORMAT+fraction) + " UTC"
}

// Metadata describes a cartridge. Fields are in sorted key order.
type Metadata struct {
	Author    string `json:"author"`
	Date      string `json:"date"`
	Readme    string `json:"readme"`
	Toolchain string `json:"toolchain"`
}

// NewMetadata creates metadata exported at the time now.
// Empty author and readme are replaced by defaults.
func NewMetadata(author string, readme string, now time.Time) (md *Metadata) {
	if len(author) == 0 {
		author = DEFAULT_AUTHOR
	}
	if len(readme) == 0 {
		readme = DEFAULT_README
	}

	md = &Metadata{
		Author:    author,
		Date:      formatDate(now),
		Readme:    readme,
		Toolchain: TOOLCHAIN,
	}

	return
}

// Format returns the metadata as compact JSON text.
func (md *Metadata) Format() (text string, err error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	err = enc.Encode(md)
	if err != nil {
		return
	}

	text = string(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))

	return
}

// ParseMetadata reads metadata text from a cartridge.
func ParseMetadata(text string) (md *Metadata, err error) {
	md = &Metadata{}
	err = json.Unmarshal([]byte(text), md)
	if err != nil {
		md = nil
	}
	return
}
