package main

import "github.com/clickexp/clickexp/cmd"

func main() {
	cmd.Execute()
}
