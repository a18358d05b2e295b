package main

import "github.com/LegacyCodeHQ/buildgraph/cmd"

func main() {
	cmd.Execute()
}
