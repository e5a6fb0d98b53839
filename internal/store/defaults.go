package store

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/idilsaglam/gacha/internal/errors"
	"github.com/idilsaglam/gacha/internal/model"
	"github.com/spf13/afero"
)

//go:embed defaults/topics.json
var bundledTopics []byte

var bundled = mustDecode(bundledTopics)

func mustDecode(b []byte) model.TopicList {
	l, err := Decode(b)
	if err != nil {
		panic(fmt.Sprintf("bundled topics: %v", err))
	}
	return l
}

// DefaultTopics returns a copy of the list shipped with the binary.
func DefaultTopics() model.TopicList {
	return bundled.Clone()
}

// LoadDefaultsFile reads a replacement default list, typically a file
// written by the exporter.
func LoadDefaultsFile(fs afero.Fs, path string) (model.TopicList, error) {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot read defaults file "+path,
			"Check storage.defaults_file in your config")
	}
	l, err := Decode(b)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Defaults file "+path+" is not a JSON array of strings", "")
	}
	return l, nil
}

// Decode parses a serialized topic list. JSON null and blank topics
// count as corrupt.
func Decode(b []byte) (model.TopicList, error) {
	var l model.TopicList
	if err := json.Unmarshal(b, &l); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if l == nil {
		return nil, fmt.Errorf("json unmarshal: not an array")
	}
	for i, t := range l {
		if strings.TrimSpace(t) == "" {
			return nil, fmt.Errorf("topic %d is blank", i+1)
		}
	}
	return l, nil
}

// Encode serializes a topic list in compact form for the slot.
func Encode(l model.TopicList) ([]byte, error) {
	b, err := json.Marshal(l.Clone())
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}
