package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/kvesta/keplerscan/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}
