package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/poe2genie/internal/catalog"
)

// searchItemsTool defines the search_items MCP tool.
var searchItemsTool = mcp.NewTool("search_items",
	mcp.WithDescription("Search current item prices by name. Returns matching items with their chaos value."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Case-insensitive substring of the item name"),
	),
	mcp.WithString("item_type",
		mcp.Description("Item type to search (default All)"),
		mcp.Enum(append([]string{catalog.ItemTypeAll}, catalog.ItemTypes...)...),
	),
	mcp.WithString("league",
		mcp.Description("League name"),
	),
)

// decodeBuildTool defines the decode_build MCP tool.
var decodeBuildTool = mcp.NewTool("decode_build",
	mcp.WithDescription("Decode a build share token (the data= parameter of a build link) into the build JSON."),
	mcp.WithString("token",
		mcp.Required(),
		mcp.Description("Share token"),
	),
)

// askAssistantTool defines the ask_assistant MCP tool.
var askAssistantTool = mcp.NewTool("ask_assistant",
	mcp.WithDescription("Ask the Path of Exile assistant a question."),
	mcp.WithString("question",
		mcp.Required(),
		mcp.Description("The question"),
	),
)

// listBuildsTool defines the list_builds MCP tool.
var listBuildsTool = mcp.NewTool("list_builds",
	mcp.WithDescription("List the locally saved builds, most recent first, with their share tokens."),
)
