package output

import (
	"github.com/sonemaro/btrls/pkg/entry"
	"github.com/sonemaro/btrls/pkg/logger"
	"gopkg.in/yaml.v3"
)

func (f *formatter) formatYAML(entries []entry.Entry) (string, error) {
	f.log.Debug("Formatting YAML output")

	bytes, err := yaml.Marshal(entries)
	if err != nil {
		f.log.WithFields(logger.Fields{
			"error": err,
		}).Error("Failed to marshal YAML")
		return "", err
	}

	return string(bytes), nil
}
