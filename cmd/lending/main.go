package main

import (
	stdLog "log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		stdLog.Fatal("load envs from .env ", zap.Error(err))
	}
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
