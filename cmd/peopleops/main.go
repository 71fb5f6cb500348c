// Command peopleops is the terminal front end for the remote HR API:
// sign-in/sign-out, per-resource CRUD, attendance, and a dashboard summary.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
