package yamlx

import (
	yaml2 "gopkg.in/yaml.v2"
)

// IsEmpty returns true when yaml doesn't contain any content.
// Comments and document separators are no content.
func IsEmpty(yaml []byte) bool {
	var d interface{}
	err := yaml2.Unmarshal(yaml, &d)

	if err != nil {
		return false
	}
	m, isMap := d.(map[interface{}]interface{})
	return d == nil || (isMap && len(m) == 0)
}
