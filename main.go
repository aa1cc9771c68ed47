package main

import "github.com/ojassapate/drone-cam/cmd"

func main() {
	cmd.Execute()
}
