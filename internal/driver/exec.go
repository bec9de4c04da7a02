package driver

import (
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/shadow-lang/shadowc/internal/config"
)

// runLLC assembles the LLVM IR text at llPath into a native object file at
// oPath using the configured toolchain's llc, capturing stderr for the
// caller to fold into a KindToolFailure diagnostic on non-zero exit.
func runLLC(cfg *config.Configuration, llPath, oPath string) error {
	llc := toolPath(cfg, "llc")
	cmd := exec.Command(llc, "-filetype=obj", "-o", oPath, llPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w: %s", llc, err, stderr.String())
	}
	return nil
}

// Link invokes clang to link every object file in objectPaths (plus the
// runtime's native glue objects) into a single executable at outputPath.
func Link(cfg *config.Configuration, objectPaths []string, outputPath string) error {
	clang := toolPath(cfg, "clang")
	args := append([]string{}, objectPaths...)
	args = append(args, cfg.NativeGlue...)
	args = append(args, "-o", outputPath)

	cmd := exec.Command(clang, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w: %s", clang, err, stderr.String())
	}
	return nil
}

func toolPath(cfg *config.Configuration, tool string) string {
	if cfg.LLVM.Path == "" {
		return tool
	}
	return filepath.Join(cfg.LLVM.Path, tool)
}
