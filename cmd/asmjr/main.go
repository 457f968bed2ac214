// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ezrec/asmjr/cart"
	"github.com/ezrec/asmjr/cpu"
	"github.com/ezrec/asmjr/vrom"
)

// defines collects repeated -D NAME=VALUE flags.
type defines map[string]float64

func (d defines) String() string {
	var list []string
	for name, value := range d {
		list = append(list, name+"="+strconv.FormatFloat(value, 'g', -1, 64))
	}
	return strings.Join(list, ",")
}

func (d defines) Set(text string) (err error) {
	name, value, ok := strings.Cut(text, "=")
	if !ok {
		value = "1"
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return
	}
	d[name] = v
	return
}

func loadVideoRom(image string, raw string) (rom []byte) {
	switch {
	case len(image) != 0:
		inf, err := os.Open(image)
		if err != nil {
			log.Fatalf("%v: %v", image, err)
		}
		defer inf.Close()

		img, err := vrom.LoadImage(inf)
		if err != nil {
			log.Fatalf("%v: %v", image, err)
		}
		if img.Width != vrom.WIDTH {
			log.Printf("%v: warning: image width %v != %v", image, img.Width, vrom.WIDTH)
		}
		rom = img.Data
	case len(raw) != 0:
		inf, err := os.Open(raw)
		if err != nil {
			log.Fatalf("%v: %v", raw, err)
		}
		defer inf.Close()

		rom, err = vrom.LoadRaw(inf)
		if err != nil {
			log.Fatalf("%v: %v", raw, err)
		}
	}

	return
}

func main() {
	var imagerom string
	var rawrom string
	var author string
	var readme string
	var message string
	var uncompressed bool
	var bare bool
	var listing bool
	var verbose bool
	predefine := defines{}

	flag.StringVar(&imagerom, "i", "", "Load image (red channel only) into video ROM")
	flag.StringVar(&rawrom, "r", "", "Load raw bytes into video ROM")
	flag.StringVar(&author, "author", "", "Author to embed into metadata")
	flag.StringVar(&readme, "readme", "", "Readme file to embed in metadata")
	flag.StringVar(&message, "m", "", "Simple message to embed in metadata")
	flag.BoolVar(&uncompressed, "u", false, "Leave cartridge body uncompressed")
	flag.BoolVar(&bare, "bare", false, "Export bare program without cartridge container")
	flag.BoolVar(&listing, "l", false, "List assembled instructions")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Var(predefine, "D", "Predefine constant NAME=VALUE")

	flag.Parse()

	if flag.NArg() < 1 || flag.NArg() > 2 {
		log.Fatalf("usage: %v [options] source.asm [output.cart]", os.Args[0])
	}

	source := flag.Arg(0)
	output := flag.Arg(1)

	inf, err := os.Open(source)
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}
	defer inf.Close()

	asm := &cpu.Assembler{Verbose: verbose}
	for name, value := range predefine {
		asm.Predefine(name, value)
	}

	prog, err := asm.Parse(inf)
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}

	log.Printf("Assembled %v ops.", prog.Len())

	if listing {
		err = prog.Listing(os.Stdout)
		if err != nil {
			log.Fatal(err)
		}
	}

	if len(output) == 0 {
		log.Printf("No output file specified.")
		return
	}

	if bare {
		data, err := prog.MarshalBinary()
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		err = os.WriteFile(output, data, 0o644)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		log.Printf("Wrote %v bytes of bare program to %v.", len(data), output)
		return
	}

	videoRom := loadVideoRom(imagerom, rawrom)

	if len(readme) != 0 {
		text, err := os.ReadFile(readme)
		if err != nil {
			log.Fatalf("%v: %v", readme, err)
		}
		message = string(text)
	}

	metadata, err := cart.NewMetadata(author, message, time.Now()).Format()
	if err != nil {
		log.Fatal(err)
	}
	if verbose {
		log.Printf("Metadata: %v", metadata)
	}

	data, err := cart.Pack(metadata, videoRom, prog, !uncompressed)
	if err != nil {
		log.Fatalf("%v: %v", output, err)
	}

	hdr, err := cart.ParseHeader(data)
	if err != nil {
		log.Fatal(err)
	}
	if hdr.Compressed != 0 {
		log.Printf("Compressed %v -> %v", hdr.Length, hdr.Compressed)
	}

	err = os.WriteFile(output, data, 0o644)
	if err != nil {
		log.Fatalf("%v: %v", output, err)
	}
	log.Printf("Wrote %v bytes to %v.", len(data), output)
}
