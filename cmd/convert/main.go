package main

import (
	"github.com/JonMunkholm/adtran-import/internal/cli"
	_ "github.com/JonMunkholm/adtran-import/internal/core/devices" // Register the Adtran catalog
)

func main() {
	cli.Execute()
}
