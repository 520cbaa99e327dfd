package main

import "github.com/bgrins/speedometer-artifact-workloads/internal/hostcli"

func main() {
	hostcli.Main("artifact-host")
}
