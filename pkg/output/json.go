package output

import (
	"encoding/json"

	"github.com/sonemaro/btrls/pkg/entry"
	"github.com/sonemaro/btrls/pkg/logger"
)

func (f *formatter) formatJSON(entries []entry.Entry) (string, error) {
	f.log.Debug("Formatting JSON output")

	bytes, err := json.Marshal(entries)
	if err != nil {
		f.log.WithFields(logger.Fields{
			"error": err,
		}).Error("Failed to marshal JSON")
		return "", err
	}

	return string(bytes), nil
}
