package main

import (
	"creatormatch/internal/app"
	"creatormatch/internal/logger"
)

func main() {
	if err := app.Run(); err != nil {
		logger.Fatal("application failed", "error", err.Error())
	}
}
