package list

type ListCmd struct {
	Artifacts ListArtifactsCmd `cmd:"" help:"List available artifacts"`
	Tests     ListTestsCmd     `cmd:"" help:"List the tests an artifact registers"`
}
