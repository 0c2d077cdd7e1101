package main

import "github.com/lexnav/lexnav/cmd/mcp"

type McpCmd struct {
	Path string `help:"Path to the workspace root." short:"p" default:"."`
}

func (m *McpCmd) Run() error {
	return mcp.RunMCP(m.Path)
}
