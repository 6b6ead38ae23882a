package main

import "github.com/mimiry/mimiry-go/internal/cli"

func main() {
	cli.Execute()
}
