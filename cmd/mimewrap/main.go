package main

import (
	"github.com/spf13/cobra"

	"github.com/zostay/mimewrap/cmd/mimewrap/cmd"
)

func main() {
	err := cmd.Execute()
	cobra.CheckErr(err)
}
