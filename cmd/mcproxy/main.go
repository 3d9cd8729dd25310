// Command mcproxy runs the multi-version protocol translation proxy:
// terminates heterogeneous-version client connections, performs the login
// handshake, and bidirectionally translates every packet against a single
// canonical backend version.
package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mcproxy/internal/config"
	"mcproxy/internal/convert"
	"mcproxy/internal/gen"
	"mcproxy/internal/registry"
	"mcproxy/internal/session"
)

const serverVersion = "1.0.0"

func main() {
	configPath := flag.String("config", "proxy.yaml", "path to the proxy's YAML configuration file")
	dataPath := flag.String("data", "", "optional path to a reference-data bundle to load conversion tables from at startup, instead of the compiled-in defaults")
	metricsAddr := flag.String("metrics-addr", "", "if set, serve Prometheus metrics on this address")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("mcproxy v%s\n", serverVersion)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	key, err := config.LoadOrGenerateKey(cfg.KeyPath)
	if err != nil {
		log.Fatal(err)
	}

	reg := registry.Default()
	var conv *convert.Tables
	if *dataPath != "" {
		conv, err = gen.LoadAtStartup(*dataPath)
		if err != nil {
			log.Fatalf("mcproxy: loading reference data from %s: %v", *dataPath, err)
		}
		log.Printf("mcproxy: loaded conversion tables from %s", *dataPath)

		if dataReg, err := gen.LoadRegistryAtStartup(*dataPath); err != nil {
			log.Printf("mcproxy: loading registry from %s: %v (keeping compiled-in defaults)", *dataPath, err)
		} else {
			reg.Merge(dataReg)
			log.Printf("mcproxy: merged registry entries from %s", *dataPath)
		}
	} else {
		conv = convert.Default()
		log.Print("mcproxy: no -data bundle given, using identity conversion tables")
	}

	shared := &session.Shared{
		Registry: reg,
		Convert:  conv,
		Key:      key,
		Backend:  cfg.BackendAddr,
		Compress: cfg.CompressionThreshold,
		Online:   cfg.OnlineMode,
	}

	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			log.Printf("mcproxy: metrics listening on %s", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				log.Printf("mcproxy: metrics server exited: %v", err)
			}
		}()
	}

	listener, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("mcproxy listening on %s, forwarding to backend %s", cfg.ListenAddr, cfg.BackendAddr)

	for {
		conn, err := listener.Accept()
		if err != nil {
			log.Printf("mcproxy: accept error: %v", err)
			continue
		}
		go session.New(shared, conn).Run()
	}
}
