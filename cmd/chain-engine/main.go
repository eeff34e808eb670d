package main

import "github.com/LENAX/chain-engine/pkg/cli/cmd"

func main() {
	cmd.Execute()
}
