package main

import "github.com/theirongolddev/chatpulse/cmd"

func main() {
	cmd.Execute()
}
