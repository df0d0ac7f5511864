package main

import "github.com/inovacc/cardvault/cmd"

func main() {
	cmd.Execute()
}
