package main

import "github.com/alexiusacademia/rcmn/cmd"

func main() {
	cmd.Execute()
}
