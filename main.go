package main

import "raid-status-bot/cmd"

func main() {
	cmd.Execute()
}
