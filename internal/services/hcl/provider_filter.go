package hcl

import (
	"github.com/bayware/bwctl/internal/types"
)

// NodeTargetsProvider reports whether a node is rendered for the provider: its VPC must
// exist in the fabric and list the provider in its cloud set. A node pointing at an
// unknown VPC is a referential fault and returns types.ErrMissingVPC rather than being skipped.
func NodeTargetsProvider(fabric *types.Fabric, node *types.Node, provider types.Provider) (bool, error) {
	vpc, err := fabric.LookupVPC(node)
	if err != nil {
		return false, err
	}

	return vpc.Cloud.Contains(provider), nil
}
