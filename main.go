package main

import "roster-audit/cmd"

func main() {
	cmd.Execute()
}
