package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Dir is the on-disk prefab directory. Files found there shadow the
// embedded copies, which is what hot reload edits.
var Dir = "prefabs"

var (
	//go:embed *.yaml
	specFS embed.FS

	//go:embed scripts/*.tengo
	scriptFS embed.FS
)

// Load returns a spec file. "soldier.yaml" and "prefabs/soldier.yaml" name
// the same file.
func Load(name string) ([]byte, error) {
	return read(specFS, specKey(name))
}

// LoadScript returns a damage script. The "prefabs/" and "scripts/"
// prefixes are optional.
func LoadScript(name string) ([]byte, error) {
	return read(scriptFS, scriptKey(name))
}

func read(embedded fs.FS, key string) ([]byte, error) {
	if data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(key))); err == nil {
		return data, nil
	}
	return fs.ReadFile(embedded, key)
}

func specKey(name string) string {
	return strings.TrimPrefix(filepath.ToSlash(name), "prefabs/")
}

func scriptKey(name string) string {
	return path.Join("scripts", strings.TrimPrefix(specKey(name), "scripts/"))
}
