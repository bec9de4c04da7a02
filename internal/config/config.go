// Package config loads the process-wide Configuration singleton: the
// installed LLVM toolchain's location and minimum accepted version, the
// system unit search paths, and the target triple the emitter and driver
// both read. It is populated once during CLI startup and never mutated
// again — the emitter and driver only ever read it.
package config

import (
	"encoding/xml"
	"fmt"
	"os"
	"runtime"
)

// Configuration is the immutable, process-wide settings value every later
// compilation phase reads. Nothing outside cmd/shadowc's startup path may
// construct or replace the singleton once Load has returned.
type Configuration struct {
	XMLName xml.Name `xml:"configuration"`

	LLVM struct {
		Path       string `xml:"path"`
		MinVersion string `xml:"minVersion"`
	} `xml:"llvm"`

	TargetTriple string `xml:"targetTriple"`

	SystemImports []string `xml:"systemImports>unit"`

	NativeGlue []string `xml:"nativeGlue>file"`
}

var singleton *Configuration

// Load reads and parses the configuration XML at path, sets it as the
// process-wide singleton, and returns it. Calling Load a second time
// replaces the singleton — callers outside cmd/shadowc's startup path
// should use Current instead of calling Load again.
func Load(path string) (*Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var cfg Configuration
	if err := xml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if cfg.LLVM.Path == "" {
		return nil, fmt.Errorf("config: %s: missing <llvm><path>", path)
	}
	if cfg.LLVM.MinVersion == "" {
		cfg.LLVM.MinVersion = defaultMinLLVMVersion()
	}

	singleton = &cfg
	return singleton, nil
}

// Current returns the process-wide singleton. It panics if Load has not
// been called yet, since every phase after CLI startup assumes a
// configuration is already in place.
func Current() *Configuration {
	if singleton == nil {
		panic("config: Current called before Load")
	}
	return singleton
}

// BuiltinPath resolves the default configuration file: the
// SHADOW_SYSTEM_CONFIG environment variable when set, otherwise the
// OS-selected built-in config.xml (linux_system.xml / windows_system.xml).
func BuiltinPath() string {
	if p := os.Getenv("SHADOW_SYSTEM_CONFIG"); p != "" {
		return p
	}
	if runtime.GOOS == "windows" {
		return builtinConfigDir() + "/windows_system.xml"
	}
	return builtinConfigDir() + "/linux_system.xml"
}

func builtinConfigDir() string {
	if dir := os.Getenv("SHADOW_HOME"); dir != "" {
		return dir + "/config"
	}
	return "/etc/shadow"
}

func defaultMinLLVMVersion() string {
	if runtime.GOOS == "windows" {
		return "10.0"
	}
	return "6.0"
}
