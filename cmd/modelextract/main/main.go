package main

import (
	"os"

	"github.com/arthur-debert/model-extract/cmd/modelextract"
)

func main() {
	os.Exit(modelextract.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
