// Command clearstate resets the durable queue snapshot so the bot starts with
// an empty line. Maintenance tool, not for routine use.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	path := flag.String("state", os.Getenv("QUEUE_STATE_PATH"), "path to the queue snapshot file")
	flag.Parse()

	if *path == "" {
		fmt.Fprintln(os.Stderr, "no snapshot path: pass -state or set QUEUE_STATE_PATH")
		os.Exit(1)
	}

	if err := os.Remove(*path); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "cant remove %s: %v\n", *path, err)
		os.Exit(1)
	}
	fmt.Printf("cleared queue snapshot %s\n", *path)
}
