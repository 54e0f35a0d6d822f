package sevenzip

import (
	"context"
	"fmt"
	"strings"

	"github.com/backmassage/webarchiver/internal/logging"
)

// Client runs add, test and list against one 7z executable.
type Client struct {
	exec Executor
	log  *logging.Logger
}

// NewClient returns a Client for the 7z binary at path (a bare name is
// looked up in PATH when the command runs).
func NewClient(path string, log *logging.Logger) *Client {
	if log == nil {
		log = logging.Discard()
	}
	return &Client{exec: Executor{Path: path}, log: log}
}

// Path returns the configured executable.
func (c *Client) Path() string { return c.exec.Path }

// Add compresses inputs into archive.
func (c *Client) Add(ctx context.Context, archive string, level int, inputs ...string) error {
	args := AddArgs(archive, level, inputs...)
	c.log.Debug("%s %s", c.exec.Path, strings.Join(args, " "))
	_, err := c.exec.Run(ctx, "add", args...)
	return err
}

// Test runs the archive integrity test. A nil error means 7z found no
// corruption.
func (c *Client) Test(ctx context.Context, archive string) error {
	args := IntegrityArgs(archive)
	c.log.Debug("%s %s", c.exec.Path, strings.Join(args, " "))
	_, err := c.exec.Run(ctx, "test", args...)
	return err
}

// List returns every entry of archive from a technical listing.
func (c *Client) List(ctx context.Context, archive string) ([]Entry, error) {
	args := ListArgs(archive)
	c.log.Debug("%s %s", c.exec.Path, strings.Join(args, " "))
	out, err := c.exec.Run(ctx, "list", args...)
	if err != nil {
		return nil, err
	}
	entries, err := ParseListing(out.Stdout)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", archive, err)
	}
	return entries, nil
}

// Version returns the 7z banner line (e.g. "7-Zip [64] 16.02 : ...").
func (c *Client) Version(ctx context.Context) (string, error) {
	out, err := c.exec.Run(ctx, "version")
	if err != nil {
		return "", err
	}
	for _, line := range strings.Split(string(out.Stdout), "\n") {
		if line = strings.TrimSpace(line); strings.Contains(line, "7-Zip") {
			return line, nil
		}
	}
	return "", fmt.Errorf("no version banner in 7z output")
}
