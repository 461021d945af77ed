package main

import "github.com/minechain/minechain/app/tooling/minecli/cmd"

func main() {
	cmd.Execute()
}
