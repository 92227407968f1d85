//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

const binDir = "bin"

// Builds the simulator into bin/lumina.
func (Build) Binary() error {
	_, err := executeCmd("go", withArgs("build", "-o", filepath.Join(binDir, "lumina"), "."), withStream())
	return err
}

// Builds the random lights control tool into bin/randomlights.
func (Build) Randomlights() error {
	_, err := executeCmd("go", withArgs("build", "-o", filepath.Join(binDir, "randomlights"), "./cmd/randomlights"), withStream())
	return err
}
