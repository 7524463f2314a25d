// Command alstransform rewrites an Alsatian corpus towards German or
// Luxembourgish spelling, either with mined spelling rules or with an aligned
// vocabulary.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
