package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"github.com/axdriver/axdriver/internal/output"
	"github.com/axdriver/axdriver/pkg/automation"
)

// toYAML serializes a result for an MCP text response.
func toYAML(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(b)
}

func timeoutParam(params map[string]interface{}, fallback time.Duration) time.Duration {
	if v, ok := params["timeout_ms"]; ok {
		if ms, ok := v.(float64); ok && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return fallback
}

func stringParam(params map[string]interface{}, key, fallback string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return fallback
}

func intParam(params map[string]interface{}, key string, fallback int) int {
	if v, ok := params[key]; ok {
		if f, ok := v.(float64); ok {
			return int(f)
		}
	}
	return fallback
}

func floatParam(params map[string]interface{}, key string, fallback float64) float64 {
	if v, ok := params[key]; ok {
		if f, ok := v.(float64); ok {
			return f
		}
	}
	return fallback
}

// resolve finds one element for a selector string. `#id` selectors are served
// from the cache when fresh; everything else goes through a Locator wait.
func (s *Server) resolve(ctx context.Context, selectorStr string, timeout time.Duration) (*automation.UIElement, error) {
	sel := automation.ParseSelector(selectorStr)
	if sel.Kind == automation.KindID {
		if el, ok := s.cache.Get(sel.Value); ok {
			return el, nil
		}
	}
	el, err := s.desktop.Locator(sel).Wait(ctx, timeout)
	if err != nil {
		return nil, err
	}
	s.cache.Put(el)
	return el, nil
}

// actionHandler resolves the selector, runs fn under the engine lock and
// invalidates the cache when the action may have reshaped the tree.
func (s *Server) actionHandler(ctx context.Context, request mcp.CallToolRequest, action string, mutates bool, fn func(*automation.UIElement) (string, error)) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	selector := stringParam(params, "selector", "")
	if selector == "" {
		return mcp.NewToolResultError("selector parameter is required"), nil
	}
	timeout := timeoutParam(params, s.timeout)

	s.mu.Lock()
	defer s.mu.Unlock()

	result := output.ActionResult{Action: action, Selector: selector}
	el, err := s.resolve(ctx, selector, timeout)
	if err != nil {
		return mcp.NewToolResultError(toYAML(struct {
			output.ActionResult `yaml:",inline"`
			Error               string `yaml:"error"`
		}{result, err.Error()})), nil
	}
	details, err := fn(el)
	if err != nil {
		return mcp.NewToolResultError(toYAML(struct {
			output.ActionResult `yaml:",inline"`
			Error               string `yaml:"error"`
		}{result, err.Error()})), nil
	}
	result.Details = details
	if mutates {
		s.cache.InvalidateAll()
	}
	return mcp.NewToolResultText(toYAML(result)), nil
}

func (s *Server) handleApps(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	apps, err := s.desktop.Applications()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result := output.AppsResult{Count: len(apps)}
	for _, app := range apps {
		result.Applications = append(result.Applications, output.Summarize(app))
	}
	s.cache.Put(apps...)
	return mcp.NewToolResultText(toYAML(result)), nil
}

func (s *Server) handleTree(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	pid := intParam(params, "pid", 0)
	if pid == 0 {
		return mcp.NewToolResultError("pid parameter is required"), nil
	}
	window := stringParam(params, "window", "")
	depth := intParam(params, "depth", 0)

	s.mu.Lock()
	defer s.mu.Unlock()

	tree, err := s.desktop.WindowTree(int32(pid), window, depth)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result := output.TreeResult{
		PID:    int32(pid),
		Window: window,
		TS:     time.Now().Unix(),
		Tree:   *tree,
	}
	return mcp.NewToolResultText(toYAML(result)), nil
}

func (s *Server) handleFind(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	selector := stringParam(params, "selector", "")
	if selector == "" {
		return mcp.NewToolResultError("selector parameter is required"), nil
	}
	timeout := timeoutParam(params, s.timeout)

	s.mu.Lock()
	defer s.mu.Unlock()

	els, err := s.desktop.LocatorString(selector).All(ctx, timeout, 0)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.cache.Put(els...)

	result := output.FindResult{Selector: selector, Count: len(els)}
	for _, el := range els {
		result.Elements = append(result.Elements, output.Summarize(el))
	}
	return mcp.NewToolResultText(toYAML(result)), nil
}

func (s *Server) handleClick(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.actionHandler(ctx, request, "click", true, func(el *automation.UIElement) (string, error) {
		res, err := el.Click()
		if err != nil {
			return "", err
		}
		return res.Method, nil
	})
}

func (s *Server) handleTypeText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := stringParam(request.GetArguments(), "text", "")
	return s.actionHandler(ctx, request, "type_text", true, func(el *automation.UIElement) (string, error) {
		return "", el.TypeText(text)
	})
}

func (s *Server) handlePressKey(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key := stringParam(request.GetArguments(), "key", "")
	if key == "" {
		return mcp.NewToolResultError("key parameter is required"), nil
	}
	return s.actionHandler(ctx, request, "press_key", true, func(el *automation.UIElement) (string, error) {
		return key, el.PressKey(key)
	})
}

func (s *Server) handleSetValue(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	value := stringParam(request.GetArguments(), "value", "")
	return s.actionHandler(ctx, request, "set_value", true, func(el *automation.UIElement) (string, error) {
		return "", el.SetValue(value)
	})
}

func (s *Server) handleScroll(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	direction := stringParam(params, "direction", "down")
	amount := floatParam(params, "amount", 0)
	return s.actionHandler(ctx, request, "scroll", true, func(el *automation.UIElement) (string, error) {
		return direction, el.Scroll(direction, amount)
	})
}

func (s *Server) handleText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	selector := stringParam(params, "selector", "")
	if selector == "" {
		return mcp.NewToolResultError("selector parameter is required"), nil
	}
	depth := intParam(params, "depth", 0)
	timeout := timeoutParam(params, s.timeout)

	s.mu.Lock()
	defer s.mu.Unlock()

	text, err := s.desktop.LocatorString(selector).Text(ctx, depth, timeout)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(toYAML(output.TextResult{Selector: selector, Text: text})), nil
}

func (s *Server) handleWait(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	selector := stringParam(params, "selector", "")
	if selector == "" {
		return mcp.NewToolResultError("selector parameter is required"), nil
	}
	condition := stringParam(params, "condition", "exists")
	timeout := timeoutParam(params, s.timeout)

	s.mu.Lock()
	defer s.mu.Unlock()

	loc := s.desktop.LocatorString(selector)
	var el *automation.UIElement
	var err error
	switch condition {
	case "exists":
		el, err = loc.Wait(ctx, timeout)
	case "visible":
		el, err = loc.ExpectVisible(ctx, timeout)
	case "enabled":
		el, err = loc.ExpectEnabled(ctx, timeout)
	case "text":
		expected := stringParam(params, "expected", "")
		el, err = loc.ExpectTextEquals(ctx, expected, 0, timeout)
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown condition %q (use exists, visible, enabled or text)", condition)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.cache.Put(el)
	return mcp.NewToolResultText(toYAML(output.ActionResult{
		Action:   "wait",
		Selector: selector,
		Details:  condition,
	})), nil
}

func (s *Server) handleOpen(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	app := stringParam(params, "app", "")
	url := stringParam(params, "url", "")
	file := stringParam(params, "file", "")

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case app != "":
		el, err := s.desktop.OpenApplication(app)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		s.cache.InvalidateAll()
		s.cache.Put(el)
		return mcp.NewToolResultText(toYAML(output.ActionResult{Action: "open", Details: app})), nil
	case url != "":
		if err := s.desktop.OpenURL(url, stringParam(params, "browser", "")); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		s.cache.InvalidateAll()
		return mcp.NewToolResultText(toYAML(output.ActionResult{Action: "open", Details: url})), nil
	case file != "":
		if err := s.desktop.OpenFile(file); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		s.cache.InvalidateAll()
		return mcp.NewToolResultText(toYAML(output.ActionResult{Action: "open", Details: file})), nil
	default:
		return mcp.NewToolResultError("one of app, url or file is required"), nil
	}
}

func (s *Server) handleActivate(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	app := stringParam(request.GetArguments(), "app", "")
	if app == "" {
		return mcp.NewToolResultError("app parameter is required"), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.desktop.ActivateApplication(app); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.cache.InvalidateAll()
	return mcp.NewToolResultText(toYAML(output.ActionResult{Action: "activate", Details: app})), nil
}

func (s *Server) handleRunCommand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	windowsCmd := stringParam(params, "windows", "")
	unixCmd := stringParam(params, "unix", "")
	if windowsCmd == "" && unixCmd == "" {
		return mcp.NewToolResultError("at least one of windows or unix is required"), nil
	}

	out, err := s.desktop.RunCommand(ctx, windowsCmd, unixCmd)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(toYAML(out)), nil
}

func (s *Server) handleScreenshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	monitor := stringParam(params, "monitor", "")
	format := stringParam(params, "format", "png")
	quality := intParam(params, "quality", 80)
	scale := floatParam(params, "scale", 0.5)

	s.mu.Lock()
	defer s.mu.Unlock()

	var shot *automation.ScreenshotResult
	var err error
	if monitor != "" {
		shot, err = s.desktop.CaptureMonitorByName(ctx, monitor)
	} else {
		shot, err = s.desktop.CaptureScreen(ctx)
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	img, err := output.ImageFromScreenshot(shot)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := output.EncodeImage(output.ScaleImage(img, scale), format, quality)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	mimeType := "image/png"
	if format == "jpg" || format == "jpeg" {
		mimeType = "image/jpeg"
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.ImageContent{
				Type:     "image",
				Data:     base64.StdEncoding.EncodeToString(data),
				MIMEType: mimeType,
			},
		},
	}, nil
}

func (s *Server) handleOCR(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	imagePath := stringParam(request.GetArguments(), "image", "")

	s.mu.Lock()
	defer s.mu.Unlock()

	if imagePath != "" {
		text, err := s.desktop.OCRImagePath(ctx, imagePath)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(text), nil
	}

	shot, err := s.desktop.CaptureScreen(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := s.desktop.OCRScreenshot(ctx, shot)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}
