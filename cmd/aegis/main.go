// The aegis command runs the reference application built on the framework:
// 'aegis serve' bootstraps the demo module tree and listens, 'aegis routes'
// prints the route table it would serve, and 'aegis info' prints build
// information.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
