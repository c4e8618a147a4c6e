package main

import "github.com/nexuchat/nexuchat/cmd"

func main() {
	cmd.Execute()
}
