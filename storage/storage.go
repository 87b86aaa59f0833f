// Package storage resolves and creates the on-disk layout.
//
// Layout:
//
//	<root>/config.toml
//	<root>/rom/programs/
//	<root>/computer/      per-instance disks, managed by the backend
//	<root>/logs/mimic.log
//
// Root priority: explicit override > MIMIC_HOME env > <user config dir>/mimic
package storage

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/lixenwraith/mimic/config"
)

// EnvHome overrides the storage root
const EnvHome = "MIMIC_HOME"

const (
	dirName        = "mimic"
	configFileName = "config.toml"
	romDirName     = "rom"
	programsName   = "programs"
	computersName  = "computer"
	logsDirName    = "logs"
)

// Layout is the resolved set of storage paths
type Layout struct {
	Root      string
	ROM       string
	Programs  string
	Computers string
	Config    string
	Logs      string
}

// Resolve computes the layout without touching the filesystem
func Resolve(override string) (Layout, error) {
	root := override
	if root == "" {
		root = os.Getenv(EnvHome)
	}
	if root == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return Layout{}, errors.Wrap(err, "resolving user config dir")
		}
		root = filepath.Join(base, dirName)
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return Layout{}, errors.Wrapf(err, "resolving storage root %s", root)
	}
	return At(root), nil
}

// At returns the layout rooted at dir
func At(dir string) Layout {
	rom := filepath.Join(dir, romDirName)
	return Layout{
		Root:      dir,
		ROM:       rom,
		Programs:  filepath.Join(rom, programsName),
		Computers: filepath.Join(dir, computersName),
		Config:    filepath.Join(dir, configFileName),
		Logs:      filepath.Join(dir, logsDirName),
	}
}

// LogFile returns the debug log path
func (l Layout) LogFile() string {
	return filepath.Join(l.Logs, "mimic.log")
}

// Ensure creates missing directories and writes the default config when absent
// Existing files are never overwritten
func (l Layout) Ensure() error {
	for _, dir := range []string{l.Root, l.ROM, l.Programs, l.Computers, l.Logs} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create dir %s", dir)
		}
	}
	if _, err := config.WriteDefault(l.Config); err != nil {
		return err
	}
	return nil
}
