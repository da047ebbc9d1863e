package sink

import (
	"encoding/json"

	"github.com/matzehuels/seqdiag/pkg/seq/layout"
)

// RenderJSON writes the geometry as indented JSON, for tooling that draws
// with its own renderer or checks layouts in tests.
func RenderJSON(g layout.Geometry) ([]byte, error) {
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
