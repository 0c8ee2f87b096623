package main

import "github.com/AnkushinDaniil/kpaths/cmd"

func main() {
	cmd.Execute()
}
