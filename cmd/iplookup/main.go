// Command iplookup resolves addresses against locally configured geo
// databases and prints one aggregate result per address.
package main

import (
	"log"
	"os"
)

func main() {
	rootCmd := newRootCmd()
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
