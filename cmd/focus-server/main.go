package main

import "github.com/oshokin/focus-beacon/cmd/focus-server/cmd"

func main() {
	cmd.Execute()
}
