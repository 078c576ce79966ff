package main

import "github.com/mdelaunay/shiftsync/cmd"

func main() {
	cmd.Execute()
}
