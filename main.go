package main

import "github.com/kei-arima/github-contrib-tracker/cmd"

func main() {
	cmd.Execute()
}
