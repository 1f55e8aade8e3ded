package cleanup

import (
	"fmt"
	"path"
	"strings"
)

// FeatureSet is a named group of project paths owned by one optional feature.
type FeatureSet struct {
	Name  string
	Paths []string
}

var (
	// GRPC holds the files that only make sense for a gRPC service.
	GRPC = FeatureSet{
		Name:  "grpc",
		Paths: []string{"api/proto", "tools.go", "buf.gen.yaml", "buf.yaml"},
	}

	// OpenAPI holds the files that only make sense for an OpenAPI service.
	OpenAPI = FeatureSet{
		Name:  "openapi",
		Paths: []string{"api/openapi.v1.yml"},
	}
)

// Select returns the set to delete for the chosen transport.
func Select(grpcEnabled bool) FeatureSet {
	if grpcEnabled {
		return OpenAPI
	}
	return GRPC
}

// CheckDisjoint returns an error if any path of a lies on or under a path of b,
// or the other way round.
func CheckDisjoint(a, b FeatureSet) error {
	for _, pa := range a.Paths {
		for _, pb := range b.Paths {
			ca, cb := path.Clean(pa), path.Clean(pb)
			if ca == cb || strings.HasPrefix(ca, cb+"/") || strings.HasPrefix(cb, ca+"/") {
				return fmt.Errorf("feature sets %s and %s overlap: %s and %s", a.Name, b.Name, pa, pb)
			}
		}
	}
	return nil
}
