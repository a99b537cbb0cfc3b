package runtime

import (
	"bytes"
	"io"
)

// FileRef describes a locally selected file awaiting upload. The content is
// exposed through Open so large files are not forced into memory until the
// upload actually runs.
type FileRef struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// NewFileRef builds a FileRef backed by an in-memory byte slice.
func NewFileRef(name, contentType string, data []byte) *FileRef {
	buf := append([]byte(nil), data...)
	return &FileRef{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(buf)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(buf)), nil
		},
	}
}

// isEmpty reports whether a submission value counts as absent for the
// purpose of required-field checks and computed-dependency satisfaction.
func isEmpty(v any) bool {
	switch tv := v.(type) {
	case nil:
		return true
	case string:
		return tv == ""
	case []string:
		return len(tv) == 0
	case []any:
		return len(tv) == 0
	case *FileRef:
		return tv == nil
	default:
		return false
	}
}

func stringValue(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func cloneValues(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		if sl, ok := v.([]string); ok {
			out[k] = append([]string(nil), sl...)
			continue
		}
		out[k] = v
	}
	return out
}
