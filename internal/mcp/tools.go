package mcp

import "github.com/mark3labs/mcp-go/mcp"

// exploreTopicTool defines the explore_topic MCP tool.
var exploreTopicTool = mcp.NewTool("explore_topic",
	mcp.WithDescription("Explore a topic: returns an explanation, a suggested next angle, and resource links. The topic is added to the navigation trail."),
	mcp.WithString("topic",
		mcp.Required(),
		mcp.Description("The topic to explore"),
	),
)

// randomTopicTool defines the random_topic MCP tool.
var randomTopicTool = mcp.NewTool("random_topic",
	mcp.WithDescription("Explore a randomly chosen starter topic."),
)

// goBackTool defines the go_back MCP tool.
var goBackTool = mcp.NewTool("go_back",
	mcp.WithDescription("Go back to the previous topic on the trail and re-explore it."),
)

// goForwardTool defines the go_forward MCP tool.
var goForwardTool = mcp.NewTool("go_forward",
	mcp.WithDescription("Go forward to the next topic on the trail and re-explore it."),
)

// topicArtTool defines the topic_art MCP tool.
var topicArtTool = mcp.NewTool("topic_art",
	mcp.WithDescription("Generate decorative ASCII art for a topic."),
	mcp.WithString("topic",
		mcp.Required(),
		mcp.Description("The topic to draw"),
	),
)

// showTrailTool defines the show_trail MCP tool.
var showTrailTool = mcp.NewTool("show_trail",
	mcp.WithDescription("Show the navigation trail of visited topics with the current position marked."),
)
