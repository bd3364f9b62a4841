package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MarcGrol/storefront/cli"
)

func main() {
	err := cli.Execute(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
