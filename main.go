package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/nicholascz666666/asrouter/cmd"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	os.Exit(cmd.Execute())
}
