// Command ratedecode-rpc serves DecoderService over gRPC, or (with the
// "describe" subcommand) dumps the service's parsed proto descriptor
// without starting a server — a debug tool exercising protoreflect in
// isolation from internal/rpc's dynamic dispatch path.
package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"os"

	"google.golang.org/grpc"

	"github.com/mikegtech/insbridge-decoder/internal/config"
	"github.com/mikegtech/insbridge-decoder/internal/render"
	"github.com/mikegtech/insbridge-decoder/internal/rpc"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "describe" {
		runDescribe()
		return
	}
	runServe()
}

func runDescribe() {
	descriptor, err := rpc.LoadDescriptor()
	if err != nil {
		log.Fatalf("ratedecode-rpc: %v", err)
	}
	fmt.Print(rpc.Describe(descriptor))
}

func runServe() {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", ":50051", "listen address")
	templatesPath := fs.String("templates", "", "path to templates.yml (defaults to the executable's directory)")
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Default()
	if err != nil {
		log.Fatalf("ratedecode-rpc: resolving config: %v", err)
	}
	if *templatesPath != "" {
		cfg = cfg.WithTemplatesPath(*templatesPath)
	}

	set, err := render.LoadTemplates(cfg.TemplatesPath)
	if err != nil {
		log.Fatalf("ratedecode-rpc: loading templates: %v", err)
	}
	renderer, err := render.NewRenderer(set)
	if err != nil {
		log.Fatalf("ratedecode-rpc: %v", err)
	}

	descriptor, err := rpc.LoadDescriptor()
	if err != nil {
		log.Fatalf("ratedecode-rpc: %v", err)
	}

	lis, err := net.Listen("tcp", *addr)
	if err != nil {
		log.Fatalf("ratedecode-rpc: listening on %s: %v", *addr, err)
	}

	gs := grpc.NewServer()
	rpc.NewServer(descriptor, renderer).Register(gs)

	log.Printf("ratedecode-rpc: serving DecoderService on %s", *addr)
	if err := gs.Serve(lis); err != nil {
		log.Fatalf("ratedecode-rpc: serve: %v", err)
	}
}
