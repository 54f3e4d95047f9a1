package main

import "github.com/beamline-ci/envboot/cmd"

func main() {
	cmd.Execute()
}
