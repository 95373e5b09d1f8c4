package common

import (
	"log/slog"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
)

const apacheLicenseHeader = `/*
 * Copyright IBM Corp. 2017 All Rights Reserved.
 *
 * SPDX-License-Identifier: Apache-2.0
 */`

// GeneratedWarning is the comment line following the license header of every generated file.
const GeneratedWarning = "// this code is generated and should not be modified"

// Header is the license block written at the top of generated files.
type Header struct {
	lines []string
}

// DefaultHeader returns the built-in Apache-2.0 header.
func DefaultHeader() Header {
	return Header{lines: strings.Split(apacheLicenseHeader, "\n")}
}

// LoadHeader reads a replacement header block from path. An empty path
// returns DefaultHeader.
func LoadHeader(logger *slog.Logger, path string) (Header, error) {
	if path == "" {
		return DefaultHeader(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Header{}, errors.Wrapf(err, "read license header %s", path)
	}
	text := strings.TrimRight(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	logger.Debug("Loaded license header override", "path", path)
	return Header{lines: strings.Split(text, "\n")}, nil
}

// Lines returns the header followed by a blank line and GeneratedWarning.
func (h Header) Lines() []string {
	out := make([]string, 0, len(h.lines)+2)
	out = append(out, h.lines...)
	return append(out, "", GeneratedWarning)
}
