package main

import "smartlib/cmd"

func main() {
	cmd.Execute()
}
