// Command fastcsv is a thin CLI wrapper over the fastcsv engine: it
// validates, reformats, and streams CSV files from the command line.
//
// Grounded on shapestone-shape-csv's examples/main.go for its plain
// fmt.Fprintf(os.Stderr, ...)/log.Fatalf error-reporting style — the
// corpus has no CLI-framework dependency (cobra/urfave) anywhere, so
// this uses the standard library's flag package, same as the rest of
// the ambient stack's "no fabricated dependency" rule.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/csvcore/fastcsv/pkg/csv"
	"github.com/csvcore/fastcsv/stream"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "validate":
		runValidate(os.Args[2:])
	case "format":
		runFormat(os.Args[2:])
	case "stream":
		runStream(os.Args[2:])
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "fastcsv: unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `fastcsv — RFC 4180 CSV engine CLI

Usage:
  fastcsv validate <file>          check a file parses under strict RFC 4180 rules
  fastcsv format [-crlf] <file>    reformat a file, normalizing delimiter/line endings
  fastcsv stream <file>            stream a large file with bounded memory, reporting progress`)
}

func runValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		log.Fatalf("fastcsv validate: expected exactly one file argument")
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		log.Fatalf("fastcsv validate: %v", err)
	}
	if err := csv.Validate(string(data)); err != nil {
		fmt.Fprintf(os.Stderr, "fastcsv validate: invalid: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("valid")
}

func runFormat(args []string) {
	fs := flag.NewFlagSet("format", flag.ExitOnError)
	useCRLF := fs.Bool("crlf", false, "use CRLF line endings in the output")
	fs.Parse(args)
	if fs.NArg() != 1 {
		log.Fatalf("fastcsv format: expected exactly one file argument")
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		log.Fatalf("fastcsv format: %v", err)
	}

	doc, err := csv.Parse(string(data))
	if err != nil {
		log.Fatalf("fastcsv format: %v", err)
	}

	opts := csv.DefaultWriterOptions()
	opts.UseCRLF = *useCRLF
	out, err := csv.RenderWithOptions(doc, opts)
	if err != nil {
		log.Fatalf("fastcsv format: %v", err)
	}
	os.Stdout.Write(out)
}

func runStream(args []string) {
	fs := flag.NewFlagSet("stream", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		log.Fatalf("fastcsv stream: expected exactly one file argument")
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		log.Fatalf("fastcsv stream: %v", err)
	}
	defer f.Close()

	var total int
	cfg := stream.DefaultConfig()
	cfg.OnProgress = func(recordsProcessed int64) {
		fmt.Fprintf(os.Stderr, "fastcsv stream: %d records processed so far\n", recordsProcessed)
	}
	p := stream.New(cfg)

	err = p.Process(context.Background(), f, func(batch [][]string) error {
		total += len(batch)
		return nil
	})
	if err != nil {
		log.Fatalf("fastcsv stream: %v", err)
	}
	fmt.Printf("%d records\n", total)
}
