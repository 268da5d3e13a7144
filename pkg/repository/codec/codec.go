package codec

import (
	"bytes"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskreg/pkg/domain/model"
)

// ErrMalformed is returned by Decode when stored content is not a risk collection
var ErrMalformed = goerr.New("malformed risk store content")

// Decode parses a stored risk collection. Empty or null content is an empty collection.
// On ErrMalformed the returned collection is empty and callers may proceed with it.
func Decode(data []byte) ([]*model.Risk, error) {
	risks := []*model.Risk{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return risks, nil
	}

	var decoded []*model.Risk
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return risks, goerr.Wrap(ErrMalformed, "failed to decode risks", goerr.V("error", err.Error()))
	}

	for _, r := range decoded {
		if r != nil {
			risks = append(risks, r)
		}
	}
	return risks, nil
}

// Encode serializes the collection as an indented JSON array
func Encode(risks []*model.Risk) ([]byte, error) {
	if risks == nil {
		risks = []*model.Risk{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(risks); err != nil {
		return nil, goerr.Wrap(err, "failed to encode risks", goerr.V("count", len(risks)))
	}
	return buf.Bytes(), nil
}
