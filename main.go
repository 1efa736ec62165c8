package main

import "email-intake/cmd"

func main() {
	cmd.Execute()
}
