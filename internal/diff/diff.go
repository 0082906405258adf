// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diff reports differences between golden and actual output
// in tests.
package diff

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Diff returns a human-readable description of the differences between
// want and got, or "" if they are equal. It uses the unified diff of
// the "diff" command when one is installed.
func Diff(want, got string) string {
	if want == got {
		return ""
	}
	if _, err := exec.LookPath("diff"); err != nil {
		return fmt.Sprintf("diff command unavailable\nwant: %q\ngot:  %q", want, got)
	}
	d, err := os.MkdirTemp("", "perfstat_diff")
	if err != nil {
		return err.Error()
	}
	defer os.RemoveAll(d)

	if err := os.WriteFile(filepath.Join(d, "want"), []byte(want), 0666); err != nil {
		return err.Error()
	}
	if err := os.WriteFile(filepath.Join(d, "got"), []byte(got), 0666); err != nil {
		return err.Error()
	}

	cmd := exec.Command("diff", "-u", "want", "got")
	cmd.Dir = d
	data, err := cmd.CombinedOutput()
	if len(data) > 0 {
		// diff exits with a non-zero status when the files differ.
		return string(data)
	}
	if err != nil {
		return err.Error()
	}
	return fmt.Sprintf("want:\n%s\ngot:\n%s", want, got)
}
