//nolint
package version

import "fmt"

var (
	// GitCommit is the current HEAD set using ldflags.
	GitCommit         string
	CosmosRelease     string
	TendermintRelease string

	Version string
)

const PegZoneVersion = "0.1.0"

func init() {
	Version = fmt.Sprintf("ProximaX Peg Zone Release: %s;", PegZoneVersion)
	if GitCommit != "" {
		Version += fmt.Sprintf(" Commit: %s;", GitCommit)
	}
	if CosmosRelease != "" {
		Version += fmt.Sprintf(" Cosmos Release: %s;", CosmosRelease)
	}
	if TendermintRelease != "" {
		Version += fmt.Sprintf(" Tendermint Release: %s;", TendermintRelease)
	}
}
