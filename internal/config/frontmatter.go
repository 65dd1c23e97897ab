// ABOUTME: Generic YAML frontmatter parser for Markdown documents
// ABOUTME: Splits a --- delimited YAML header from the body; CRLF is normalized

package config

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontmatterDelimiter = "---"

// ErrUnterminatedFrontmatter is returned when the opening --- has no closing match.
var ErrUnterminatedFrontmatter = errors.New("unterminated frontmatter: missing closing ---")

// ParseFrontmatter decodes the YAML header of content into T and returns the
// remaining body. Content without a header yields (zero T, content, nil).
func ParseFrontmatter[T any](content string) (T, string, error) {
	var meta T

	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	rest, ok := strings.CutPrefix(normalized, frontmatterDelimiter+"\n")
	if !ok {
		return meta, content, nil
	}

	var header, body string
	if after, ok := strings.CutPrefix(rest, frontmatterDelimiter); ok && (after == "" || after[0] == '\n') {
		body = after
	} else {
		header, body, ok = strings.Cut(rest, "\n"+frontmatterDelimiter)
		if !ok {
			return meta, "", ErrUnterminatedFrontmatter
		}
	}
	body = strings.TrimPrefix(body, "\n")

	if err := yaml.Unmarshal([]byte(header), &meta); err != nil {
		return meta, "", fmt.Errorf("parse frontmatter YAML: %w", err)
	}
	return meta, body, nil
}
