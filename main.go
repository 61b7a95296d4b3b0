package main

import "github.com/klytics/sheetmind/cmd"

func main() {
	cmd.Execute()
}
