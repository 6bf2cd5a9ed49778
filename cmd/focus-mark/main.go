package main

import "github.com/oshokin/focus-beacon/cmd/focus-mark/cmd"

func main() {
	cmd.Execute()
}
