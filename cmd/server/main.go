package main

import (
	"github.com/johnkimo5/architect-design-ai/internal/server"
	"github.com/johnkimo5/architect-design-ai/internal/util"
	"github.com/johnkimo5/architect-design-ai/pkg/logger"
	"github.com/johnkimo5/architect-design-ai/pkg/logger/console"

	_ "github.com/lib/pq"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	server.Init()
}
