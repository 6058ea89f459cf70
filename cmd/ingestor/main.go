package main

import (
	"github.com/provscan/explorer-ingest/cmd"
)

func main() {
	cmd.Execute()
}
