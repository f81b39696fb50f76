package main

import (
	"context"
	"log"

	"github.com/goliatone/go-ebookform/internal/cli"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		log.Fatalf("ebookform-cli: %v", err)
	}
}
