// Package replay persists episode traces so external learners can
// consume them.
package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"path"

	"github.com/aecgames/spielbridge/types"
	"github.com/aecgames/spielbridge/util"
)

// Sink is a destination for episode traces.
type Sink interface {
	Append(trace *types.Trace) error
	Close() error
}

// FileSink appends traces to a JSONL file, one trace per line.
type FileSink struct {
	path string
}

var _ Sink = &FileSink{}

func NewFileSink(filePath string) (*FileSink, error) {
	if dir := path.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("replay: creating %s: %w", dir, err)
		}
	}
	return &FileSink{path: filePath}, nil
}

func (f *FileSink) Append(trace *types.Trace) error {
	bs, err := json.Marshal(trace)
	if err != nil {
		return fmt.Errorf("replay: marshaling trace %d: %w", trace.Episode, err)
	}
	return util.AppendToFile(f.path, string(bs))
}

func (f *FileSink) Close() error {
	return nil
}
