package cli

import (
	"io"
	"testing"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"query", "graph", "dot", "browse", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}

	if root.Use != appName {
		t.Errorf("root.Use = %q, want %q", root.Use, appName)
	}
}

func TestGraphCommandSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	g := c.graphCommand()

	want := []string{"stats", "import", "export", "list", "delete"}
	for _, name := range want {
		found := false
		for _, cmd := range g.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("graph command is missing subcommand %q", name)
		}
	}
}
