package main

import (
	"log"

	"github.com/bibiti/supportbot/core/cmd"
	"github.com/bibiti/supportbot/internal/app"
)

func main() {
	err := cmd.Run(cmd.Options{
		ConfigEnvVar:      "CONFIG_PATH",
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (cmd.ConfigCarrier, error) {
			return app.LoadConfig(path)
		},
		Bootstrap: func(carrier cmd.ConfigCarrier) (cmd.TelegramApp, error) {
			return app.New(carrier.CoreConfig())
		},
	})
	if err != nil {
		log.Fatalf("bot exited: %v", err)
	}
}
