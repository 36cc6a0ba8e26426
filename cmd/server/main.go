package main

import (
	"github.com/sciorbit/orbit/internal/server"
	"github.com/sciorbit/orbit/internal/util"
	"github.com/sciorbit/orbit/pkg/logger"
	"github.com/sciorbit/orbit/pkg/logger/console"
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
