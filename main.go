package main

import "github.com/KaramelBytes/docsgen-cli/cmd"

func main() {
	cmd.Execute()
}
