package main

import "journal-workflow/cmd"

func main() {
	cmd.Execute()
}
