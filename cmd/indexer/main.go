package main

import (
	"github.com/blobscan/indexer/cmd"
)

func main() {
	cmd.Execute()
}
