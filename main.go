package main

import (
	"github.com/AzielCF/az-presence/cmd"
)

func main() {
	cmd.Execute()
}
