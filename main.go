package main

import "github.com/inovacc/craft-stats/cmd"

func main() {
	cmd.Execute()
}
