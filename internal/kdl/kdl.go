package kdl

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sblinch/kdl-go"
)

// Unmarshal decodes the document at path on top of defaultCfg, so nodes
// absent from the file keep their default values. A missing file keeps
// os.ErrNotExist in the chain.
func Unmarshal[T any](path string, defaultCfg T) (T, error) {
	var zero T
	data, err := os.ReadFile(path)
	if err != nil {
		return zero, errors.Wrap(err, "read kdl document")
	}
	return Decode(data, defaultCfg)
}

func Decode[T any](data []byte, defaultCfg T) (T, error) {
	var zero T
	if err := kdl.Unmarshal(data, &defaultCfg); err != nil {
		return zero, errors.Wrap(err, "decode kdl document")
	}
	return defaultCfg, nil
}
