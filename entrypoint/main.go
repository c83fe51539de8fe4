package main

import (
	"experimentallabor.de/gertag/cli"
	"experimentallabor.de/gertag/logger"
)

func main() {
	logger.SetupLogging()
	cli.Execute()
}
