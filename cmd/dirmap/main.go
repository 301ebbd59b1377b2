package main

import "github.com/mvp-joe/dirmap/internal/cli"

func main() {
	cli.Execute()
}
