//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the simulator. EMITTERS overrides the emitter configuration file.
func (Run) Simulator() error {
	args := []string{"run", "."}
	if cfg := os.Getenv("EMITTERS"); cfg != "" {
		args = append(args, cfg)
	}
	fmt.Println("Run simulator...")
	_, err := executeCmd("go", withArgs(args...), withStream())
	return err
}

// Flashes random colours on a running simulator. RODS and TIMES override the defaults.
func (Run) Randomlights() error {
	args := []string{"run", "./cmd/randomlights"}
	if rods := os.Getenv("RODS"); rods != "" {
		args = append(args, rods)
		if times := os.Getenv("TIMES"); times != "" {
			args = append(args, times)
		}
	}
	_, err := executeCmd("go", withArgs(args...), withStream())
	return err
}
