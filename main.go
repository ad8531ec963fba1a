package main

import "github.com/YanChii/pcstopo/cmd"

func main() {
	cmd.Execute()
}
