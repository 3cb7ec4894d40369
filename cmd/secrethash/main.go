package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/2beens/healthstats/pkg"
)

// prints the bcrypt hash to put into HEALTHSTATS_CLIENT_SECRET_HASH
func main() {
	secret := flag.String("secret", "", "API client secret to hash")
	flag.Parse()

	if *secret == "" {
		fmt.Fprintln(os.Stderr, "usage: secrethash -secret <client secret>")
		os.Exit(1)
	}

	hash, err := pkg.HashSecret(*secret)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash secret: %s\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
