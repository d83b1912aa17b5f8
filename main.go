package main

import "github.com/chapool/rosetta-signer/cmd"

func main() {
	cmd.Execute()
}
