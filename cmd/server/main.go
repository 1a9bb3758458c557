package main

import (
	"log"
	"os"

	"github.com/spf13/pflag"

	"github.com/arunpandian9159/Booking-agent/internal/app"
)

func main() {
	configPath := pflag.String("config", "", "path to booking-server.yaml")
	pflag.Parse()

	if err := app.Run(*configPath); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
