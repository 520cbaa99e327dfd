package main

import (
	"github.com/bgrins/speedometer-artifact-workloads/pkg/workload"
	"github.com/bgrins/speedometer-artifact-workloads/workloads/edu"
	"github.com/bgrins/speedometer-artifact-workloads/workloads/finance"
	"github.com/bgrins/speedometer-artifact-workloads/workloads/wiki"
)

func main() {
	suite := workload.CreateSuite("artifact-workloads")

	suite.AddArtifact(&edu.Artifact{})
	suite.AddArtifact(&finance.Artifact{})
	suite.AddArtifact(&wiki.Artifact{})

	suite.Run()
}
