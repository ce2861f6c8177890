package main

import "clearance-tracker/internal/cli"

func main() {
	cli.Execute()
}
