// Package config resolves the launch configuration for archon-launcher.
//
// The launcher works out of the box with fixed defaults (image tags,
// container name, published ports, build context layout). A project may
// override them by placing an archon.jsonc (JSON with Comments) or
// archon.yaml file in the project directory; absent or partial files
// fall back to the defaults field by field.
//
// JSONC parsing uses github.com/tidwall/jsonc to strip comments before
// handing the document to encoding/json; YAML parsing uses
// gopkg.in/yaml.v3.
package config
