// Command gmollama drives the bridge from a terminal: it issues one call,
// pumps the tick loop the way an embedding host would, and prints the
// callback's result. Useful for poking at an Ollama install (or the stub
// server) without a game attached.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
