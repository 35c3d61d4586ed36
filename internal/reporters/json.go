package reporters

import (
	"encoding/json"

	"github.com/hexvalidate/hex-validate/internal/checkapi"
)

// jsonDocument is the single document shape emitted to stdout:
// { "results": [<check result>, ...] }
type jsonDocument struct {
	Results []checkapi.Result `json:"results"`
}

// JSON renders the raw result list (not the aggregator summary — every
// finding, stdout/stderr capture, and artifact is reproduced verbatim)
// as one UTF-8-valid JSON document.
func JSON(results []checkapi.Result) ([]byte, error) {
	if results == nil {
		results = []checkapi.Result{}
	}
	doc := jsonDocument{Results: results}
	return json.MarshalIndent(doc, "", "  ")
}
