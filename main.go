package main

import "github.com/Beastly713/pixelstash/cmd"

func main() {
	cmd.Execute()
}
