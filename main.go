package main

import "github.com/aaron-stalmic/countsheet/cmd"

func main() {
	cmd.Execute()
}
