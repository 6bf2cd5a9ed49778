package main

import "github.com/oshokin/focus-beacon/cmd/focus-notifier/cmd"

func main() {
	cmd.Execute()
}
