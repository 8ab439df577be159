package params

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// LoadYAML parses a YAML mapping of parameter ids to values into a Dict.
//
// Scalars become int or float entries, sequences become float vectors:
//
//	0: 16     # num_output
//	1: 3      # kernel_w
//	5: 1      # bias_term
//	9: 3      # activation_type
//	10: [0.0, 6.0]
func LoadYAML(r io.Reader) (*Dict, error) {
	raw := map[int]any{}
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("params: decode yaml: %w", err)
	}

	d := NewDict()
	for id, v := range raw {
		switch val := v.(type) {
		case int:
			d.SetInt(id, val)
		case float64:
			d.SetFloat(id, float32(val))
		case []any:
			fs := make([]float32, 0, len(val))
			for i, item := range val {
				switch n := item.(type) {
				case int:
					fs = append(fs, float32(n))
				case float64:
					fs = append(fs, float32(n))
				default:
					return nil, fmt.Errorf("params: id %d element %d: unsupported type %T", id, i, item)
				}
			}
			d.SetFloats(id, fs)
		default:
			return nil, fmt.Errorf("params: id %d: unsupported type %T", id, v)
		}
	}
	return d, nil
}
