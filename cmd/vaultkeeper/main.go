package main

import "vaultkeeper/cmd/vaultkeeper/cmd"

func main() {
	cmd.Execute()
}
