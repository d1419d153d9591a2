package main

import "github.com/rail44/charfreq/cmd"

func main() {
	cmd.Execute()
}
