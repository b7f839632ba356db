package main

import (
	"fileserver/cmd"
)

func main() {
	cmd.Execute()
}
