// Command mcdatagen is the build-time reference-data generator: it reads
// a gzip-compressed reference-data bundle and emits Go source files into
// internal/convert, internal/registry, and internal/packetid. The emitted
// registerGenerated functions are not called by cmd/mcproxy or by those
// packages, so mcproxy loads real tables only through its -data flag.
// Run out-of-band -- never invoked by cmd/mcproxy itself.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"mcproxy/internal/gen"
)

func main() {
	bundlePath := flag.String("bundle", "", "path to the gzip-compressed reference-data bundle")
	outDir := flag.String("out", ".", "module root to write internal/{convert,registry,packetid} generated files under")
	flag.Parse()

	if *bundlePath == "" {
		fmt.Fprintln(os.Stderr, "mcdatagen: -bundle is required")
		os.Exit(2)
	}

	b, err := gen.LoadBundle(*bundlePath)
	if err != nil {
		log.Fatal(err)
	}

	write := func(rel string, genFn func(gen.Bundle) ([]byte, error)) {
		src, err := genFn(b)
		if err != nil {
			log.Fatalf("mcdatagen: %s: %v", rel, err)
		}
		full := filepath.Join(*outDir, rel)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			log.Fatalf("mcdatagen: mkdir for %s: %v", rel, err)
		}
		if err := os.WriteFile(full, src, 0o644); err != nil {
			log.Fatalf("mcdatagen: write %s: %v", rel, err)
		}
		log.Printf("mcdatagen: wrote %s", full)
	}

	write("internal/convert/tables_gen.go", gen.GenerateTablesGo)
	write("internal/registry/registry_gen.go", gen.GenerateRegistryGo)
	write("internal/packetid/ids_gen.go", gen.GenerateIDsGo)
}
