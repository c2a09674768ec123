package main

import "teamdesk/cmd"

func main() {
	cmd.Execute()
}
