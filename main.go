package main

import "github.com/Montessquio/tinytemple/cmd"

func main() {
	cmd.Execute()
}
