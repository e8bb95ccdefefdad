package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/ping-game/game/engine"
	"github.com/wricardo/ping-game/game/session"
)

// Version reported to MCP clients.
const Version = "1.0.0"

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// matchList mirrors the REST response of GET /api/matches.
type matchList struct {
	Matches []session.MatchInfo `json:"matches"`
	Recent  []session.MatchInfo `json:"recent"`
	Count   int                 `json:"count"`
}

// statsResponse mirrors the REST response of GET /api/stats.
type statsResponse struct {
	session.Stats
	Connections int `json:"connections"`
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Ping Game Observer",
		Version,
		server.WithToolCapabilities(true),
		server.WithInstructions(`Ping - MCP Observer Interface

Ping is a two-player hidden-information board game played over WebSocket.
This interface is read-only: it proxies to the REST API and never exposes a
board, because every board is one side's private view.

AVAILABLE TOOLS:
- game_rules: Board size, move budget, shoot radius and the placeable shapes
- list_matches: Matches in progress (and optionally recently finished ones)
- match_status: Turn, budget and result of a single match
- server_stats: Players waiting, matches running and finished, open connections`),
	)

	c.registerTools()
}

func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_rules",
		Description: "Describe the fixed game parameters and the action protocol",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameRules)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_matches",
		Description: "List matches in progress",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"recent": map[string]interface{}{
					"type":        "boolean",
					"description": "Also list recently finished matches",
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of matches per list",
				},
			},
		},
	}, c.handleListMatches)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "match_status",
		Description: "Get the public status of one match",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID",
				},
			},
			Required: []string{"match_id"},
		},
	}, c.handleMatchStatus)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "server_stats",
		Description: "Get matchmaking and connection counters",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleServerStats)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

func (c *Client) apiCall(ctx context.Context, path string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

// Tool handlers

func (c *Client) handleGameRules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var rules session.Rules
	if err := c.apiCall(ctx, "/api/rules", &rules); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatRules(&rules)), nil
}

func (c *Client) handleListMatches(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	query := url.Values{}
	if recent, ok := args["recent"].(bool); ok && recent {
		query.Set("recent", "true")
	}
	if limit, ok := args["limit"].(float64); ok && limit > 0 {
		query.Set("limit", strconv.Itoa(int(limit)))
	}
	path := "/api/matches"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var list matchList
	if err := c.apiCall(ctx, path, &list); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatMatchList(&list)), nil
}

func (c *Client) handleMatchStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	matchID, _ := args["match_id"].(string)
	if matchID == "" {
		return mcp.NewToolResultError("match_id is required"), nil
	}

	var info session.MatchInfo
	if err := c.apiCall(ctx, "/api/matches/"+url.PathEscape(matchID), &info); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatMatchInfo(&info)), nil
}

func (c *Client) handleServerStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var stats statsResponse
	if err := c.apiCall(ctx, "/api/stats", &stats); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatStats(&stats)), nil
}

// Formatting

func formatRules(rules *session.Rules) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Board: %dx%d\n", rules.BoardWidth, rules.BoardWidth)
	fmt.Fprintf(&sb, "Moves per turn: %d\n", rules.MovesPerTurn)
	fmt.Fprintf(&sb, "Shoot radius: %d\n", rules.ShootRadius)
	fmt.Fprintf(&sb, "Directions: %s\n", strings.Join(rules.Directions, ", "))
	fmt.Fprintf(&sb, "Actions: %s\n", strings.Join(rules.Actions, ", "))
	sb.WriteString("Shapes:\n")
	for i, shape := range rules.Shapes {
		fmt.Fprintf(&sb, "  %d: %s\n", i, formatShape(shape))
	}
	return sb.String()
}

func formatShape(shape engine.Shape) string {
	cells := make([]string, len(shape))
	for i, off := range shape {
		cells[i] = fmt.Sprintf("[%d,%d]", off.X, off.Y)
	}
	return strings.Join(cells, " ")
}

func formatMatchInfo(info *session.MatchInfo) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Match %s: %s (white) vs %s (black)\n", info.ID, info.White, info.Black)
	fmt.Fprintf(&sb, "Status: %s\n", info.Status)
	if info.Winner != "" {
		fmt.Fprintf(&sb, "Winner: %s (%s)\n", info.Winner, info.Reason)
	} else {
		fmt.Fprintf(&sb, "Turn %d: %s to play, %d moves remaining\n", info.TurnNumber, info.Turn, info.MovesRemaining)
	}
	if !info.LastActionAt.IsZero() {
		fmt.Fprintf(&sb, "Last action: %s\n", info.LastActionAt.Format(time.RFC3339))
	}
	return sb.String()
}

func formatMatchList(list *matchList) string {
	var sb strings.Builder
	if len(list.Matches) == 0 {
		sb.WriteString("No matches in progress\n")
	} else {
		fmt.Fprintf(&sb, "%d matches in progress:\n", len(list.Matches))
		for _, m := range list.Matches {
			fmt.Fprintf(&sb, "- %s: %s vs %s, turn %d (%s, %d left)\n",
				m.ID, m.White, m.Black, m.TurnNumber, m.Turn, m.MovesRemaining)
		}
	}
	if len(list.Recent) > 0 {
		fmt.Fprintf(&sb, "%d recently finished:\n", len(list.Recent))
		for _, m := range list.Recent {
			fmt.Fprintf(&sb, "- %s: %s vs %s, %s won (%s)\n", m.ID, m.White, m.Black, m.Winner, m.Reason)
		}
	}
	return sb.String()
}

func formatStats(stats *statsResponse) string {
	return fmt.Sprintf("Waiting: %d\nActive matches: %d\nCompleted matches: %d\nConnections: %d\n",
		stats.Waiting, stats.Active, stats.Completed, stats.Connections)
}
