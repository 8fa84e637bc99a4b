package main

import (
	"os"

	"budgetlens/internal/logger"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	Execute()
}
