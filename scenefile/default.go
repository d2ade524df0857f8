package scenefile

import _ "embed"

//go:embed default.yaml
var defaultScene []byte

// Default returns the built-in demo scene. It only uses builtin meshes, so
// it builds with any base directory.
func Default() *Document {
	doc, err := Parse(defaultScene)
	if err != nil {
		panic("scenefile: built-in scene: " + err.Error())
	}
	return doc
}
