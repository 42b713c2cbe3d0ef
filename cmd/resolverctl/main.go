// Command resolverctl manages signer keys, derives program addresses and
// drives the dispute API.
package main

import (
	"os"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
