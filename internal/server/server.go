// Package server exposes the automation engine over the Model Context
// Protocol so agents can drive the desktop without shelling out per action.
package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/axdriver/axdriver/internal/version"
	"github.com/axdriver/axdriver/pkg/automation"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
	CacheTTL  time.Duration
	// Timeout bounds each element resolution inside a tool call.
	Timeout time.Duration
}

// Server wraps the MCP server with the desktop handle and element cache.
// Engine access is serialized: accessibility trees are not safe under
// concurrent mutation from the same client.
type Server struct {
	desktop *automation.Desktop
	cache   *ElementCache
	timeout time.Duration
	mu      sync.Mutex
	mcp     *mcpserver.MCPServer
}

// New creates and configures an MCP server with all automation tools.
func New(desktop *automation.Desktop, cfg Config) *Server {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = automation.DefaultLocatorTimeout
	}
	s := &Server{
		desktop: desktop,
		cache:   NewElementCache(cfg.CacheTTL),
		timeout: timeout,
	}
	s.mcp = mcpserver.NewMCPServer("axdriver", version.Version)
	s.registerTools()
	return s
}

// Serve starts the MCP server with the configured transport.
func (s *Server) Serve(cfg Config) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *Server) registerTools() {
	selectorDesc := mcp.Description("Selector string, e.g. 'role:Button|name:Submit', '#el_1a2b', 'name:Save', 'text:Hello', '.ClassName'. Chain steps with ' >> '.")

	s.mcp.AddTool(
		mcp.NewTool("apps",
			mcp.WithDescription("List running applications with their stable IDs, names and PIDs"),
		),
		s.handleApps,
	)

	s.mcp.AddTool(
		mcp.NewTool("tree",
			mcp.WithDescription("Read the UI element tree of an application window. Returns roles, names, values, bounds and stable IDs."),
			mcp.WithNumber("pid", mcp.Required(), mcp.Description("Process ID of the application")),
			mcp.WithString("window", mcp.Description("Filter by window title substring")),
			mcp.WithNumber("depth", mcp.Description("Max depth to traverse (0 = default)")),
		),
		s.handleTree,
	)

	s.mcp.AddTool(
		mcp.NewTool("find",
			mcp.WithDescription("Find all elements matching a selector"),
			mcp.WithString("selector", mcp.Required(), selectorDesc),
			mcp.WithNumber("timeout_ms", mcp.Description("Resolution timeout in milliseconds")),
		),
		s.handleFind,
	)

	s.mcp.AddTool(
		mcp.NewTool("click",
			mcp.WithDescription("Click an element"),
			mcp.WithString("selector", mcp.Required(), selectorDesc),
			mcp.WithNumber("timeout_ms", mcp.Description("Resolution timeout in milliseconds")),
		),
		s.handleClick,
	)

	s.mcp.AddTool(
		mcp.NewTool("type_text",
			mcp.WithDescription("Type text into an element (focuses it first)"),
			mcp.WithString("selector", mcp.Required(), selectorDesc),
			mcp.WithString("text", mcp.Required(), mcp.Description("Text to type")),
			mcp.WithNumber("timeout_ms", mcp.Description("Resolution timeout in milliseconds")),
		),
		s.handleTypeText,
	)

	s.mcp.AddTool(
		mcp.NewTool("press_key",
			mcp.WithDescription("Press a key combination on an element, e.g. 'enter', 'ctrl+shift+t'"),
			mcp.WithString("selector", mcp.Required(), selectorDesc),
			mcp.WithString("key", mcp.Required(), mcp.Description("Key combination")),
			mcp.WithNumber("timeout_ms", mcp.Description("Resolution timeout in milliseconds")),
		),
		s.handlePressKey,
	)

	s.mcp.AddTool(
		mcp.NewTool("set_value",
			mcp.WithDescription("Set an element's value directly, bypassing keystrokes"),
			mcp.WithString("selector", mcp.Required(), selectorDesc),
			mcp.WithString("value", mcp.Required(), mcp.Description("New value")),
			mcp.WithNumber("timeout_ms", mcp.Description("Resolution timeout in milliseconds")),
		),
		s.handleSetValue,
	)

	s.mcp.AddTool(
		mcp.NewTool("scroll",
			mcp.WithDescription("Scroll within an element"),
			mcp.WithString("selector", mcp.Required(), selectorDesc),
			mcp.WithString("direction", mcp.Description("up, down, left or right (default down)")),
			mcp.WithNumber("amount", mcp.Description("Scroll amount in lines (0 = default)")),
			mcp.WithNumber("timeout_ms", mcp.Description("Resolution timeout in milliseconds")),
		),
		s.handleScroll,
	)

	s.mcp.AddTool(
		mcp.NewTool("text",
			mcp.WithDescription("Read the aggregated text content of an element's subtree"),
			mcp.WithString("selector", mcp.Required(), selectorDesc),
			mcp.WithNumber("depth", mcp.Description("Max depth to aggregate (0 = default)")),
			mcp.WithNumber("timeout_ms", mcp.Description("Resolution timeout in milliseconds")),
		),
		s.handleText,
	)

	s.mcp.AddTool(
		mcp.NewTool("wait",
			mcp.WithDescription("Wait for an element to exist and optionally satisfy a condition"),
			mcp.WithString("selector", mcp.Required(), selectorDesc),
			mcp.WithString("condition", mcp.Description("exists (default), visible, enabled, or text")),
			mcp.WithString("expected", mcp.Description("Expected text when condition is 'text'")),
			mcp.WithNumber("timeout_ms", mcp.Description("Wait timeout in milliseconds")),
		),
		s.handleWait,
	)

	s.mcp.AddTool(
		mcp.NewTool("open",
			mcp.WithDescription("Open an application, URL or file"),
			mcp.WithString("app", mcp.Description("Application name to launch")),
			mcp.WithString("url", mcp.Description("URL to open")),
			mcp.WithString("browser", mcp.Description("Browser to open the URL with")),
			mcp.WithString("file", mcp.Description("File path to open with its default application")),
		),
		s.handleOpen,
	)

	s.mcp.AddTool(
		mcp.NewTool("activate",
			mcp.WithDescription("Bring an application to the foreground"),
			mcp.WithString("app", mcp.Required(), mcp.Description("Application name")),
		),
		s.handleActivate,
	)

	s.mcp.AddTool(
		mcp.NewTool("run_command",
			mcp.WithDescription("Run a shell command and return its output"),
			mcp.WithString("windows", mcp.Description("Command for Windows (cmd /C)")),
			mcp.WithString("unix", mcp.Description("Command for macOS/Linux (/bin/sh -c)")),
		),
		s.handleRunCommand,
	)

	s.mcp.AddTool(
		mcp.NewTool("screenshot",
			mcp.WithDescription("Capture the screen and return it as an image"),
			mcp.WithString("monitor", mcp.Description("Capture a specific monitor by name")),
			mcp.WithString("format", mcp.Description("png or jpg (default png)")),
			mcp.WithNumber("quality", mcp.Description("JPEG quality 1-100")),
			mcp.WithNumber("scale", mcp.Description("Scale factor 0.1-1.0 (default 0.5)")),
		),
		s.handleScreenshot,
	)

	s.mcp.AddTool(
		mcp.NewTool("ocr",
			mcp.WithDescription("Run OCR over the screen or an image file"),
			mcp.WithString("image", mcp.Description("Path to an image file; captures the screen when omitted")),
		),
		s.handleOCR,
	)
}
