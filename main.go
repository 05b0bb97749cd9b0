package main

import "stockmentions/cmd"

func main() {
	cmd.Execute()
}
