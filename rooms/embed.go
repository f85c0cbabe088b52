// Package rooms ships the world's room files. Like the prefab specs, a
// rooms/ directory on disk wins over the embedded copies so levels can be
// edited without a rebuild.
package rooms

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed *.json
var embedded embed.FS

const diskDir = "rooms"

// FS returns the room file system.
func FS() fs.FS {
	if info, err := os.Stat(diskDir); err == nil && info.IsDir() {
		return os.DirFS(diskDir)
	}
	return embedded
}

// WorldFile is the entry point file name inside FS.
const WorldFile = "world.json"
