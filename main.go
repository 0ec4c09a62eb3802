package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetOutput(os.Stderr)
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("optionpricer: %v", err)
	}
}
