package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	// various formatters
	_ "github.com/netsampler/flowkey/format/json"
	_ "github.com/netsampler/flowkey/format/protobuf"
	_ "github.com/netsampler/flowkey/format/text"
	_ "github.com/netsampler/flowkey/format/yaml"

	// various transports
	_ "github.com/netsampler/flowkey/transport/file"
	_ "github.com/netsampler/flowkey/transport/kafka"

	"github.com/netsampler/flowkey/pkg/flowkey/app"
	"github.com/netsampler/flowkey/pkg/flowkey/config"

	log "github.com/sirupsen/logrus"
)

var (
	version    = ""
	buildinfos = ""
	AppVersion = "flowkey " + version + " " + buildinfos
)

func main() {
	cfg := config.BindFlags(flag.CommandLine)
	printVersion := flag.Bool("v", false, "Print version")
	flag.Parse()

	if *printVersion {
		fmt.Println(AppVersion)
		os.Exit(0)
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Run(ctx); err != nil {
		log.Error(err)
		stop()
		os.Exit(1)
	}
}
