package expand

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"text/template"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/sprig/v3"
	yaml2 "gopkg.in/yaml.v2"
)

// GetDefaultFunctions returns a map with functions that are commonly used in templates.
// It consists of Sprig (generic)functions and TOML,JSON,YAML conversion functions.
func getDefaultFunctions() template.FuncMap {
	answer := sprig.TxtFuncMap()

	// templates are rendered from profiles, don't leak the build environment.
	delete(answer, "env")
	delete(answer, "expandenv")

	// add extra functionality
	answer["toToml"] = toToml
	answer["toYaml"] = toYaml
	answer["fromYaml"] = fromYaml
	answer["toJson"] = toJson
	answer["fromJson"] = fromJson

	// add functions that sprig doesn't implement cross-platform (that don't work on windows)
	answer["filebase"] = filepath.Base
	answer["filedir"] = filepath.Dir
	answer["fileclean"] = filepath.Clean
	answer["fileext"] = filepath.Ext

	return answer
}

// ToToml returns v as TOML, errors are returned as text.
func toToml(v interface{}) string {
	b := bytes.NewBuffer(nil)
	err := toml.NewEncoder(b).Encode(v)
	if err != nil {
		return err.Error()
	}
	return b.String()
}

// ToYaml returns v as YAML, errors result in an empty string.
func toYaml(v interface{}) string {
	b, err := yaml2.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// FromYaml parses s, errors are returned in the "Error" key.
func fromYaml(s string) map[string]interface{} {
	m := map[string]interface{}{}
	err := yaml2.Unmarshal([]byte(s), &m)
	if err != nil {
		m["Error"] = err.Error()
	}
	return m
}

// ToJson returns v as JSON, errors result in an empty string.
func toJson(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// FromJson parses s, errors are returned in the "Error" key.
func fromJson(s string) map[string]interface{} {
	m := map[string]interface{}{}
	err := json.Unmarshal([]byte(s), &m)
	if err != nil {
		m["Error"] = err.Error()
	}
	return m
}
