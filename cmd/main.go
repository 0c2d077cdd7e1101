package main

import (
	"github.com/alecthomas/kong"
)

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("lexnav"),
		kong.Description("Lexical go-to-definition for Python and TypeScript workspaces."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

type CLI struct {
	Resolve ResolveCmd `cmd:"" help:"Resolve the definition of the symbol at a position."`
	Symbols SymbolsCmd `cmd:"" help:"List the declarations in a file." aliases:"syms"`
	Lsp     LspCmd     `cmd:"" help:"Run the LSP server."`
	Mcp     McpCmd     `cmd:"" help:"Run the MCP server."`
	Version VersionCmd `cmd:"" help:"Show version."`
}
