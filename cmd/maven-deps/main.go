package main

import "maven-deps/internal/cli"

func main() {
	cli.Execute()
}
