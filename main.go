package main

import "github.com/pders01/diagen/cmd"

func main() {
	cmd.Execute()
}
