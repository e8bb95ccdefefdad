package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wricardo/ping-game/game/session"
)

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), name string, args map[string]interface{}) (string, bool) {
	t.Helper()
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	result, err := handler(context.Background(), request)
	if err != nil {
		t.Fatalf("%s failed: %v", name, err)
	}
	if result == nil || len(result.Content) == 0 {
		t.Fatalf("%s returned no content", name)
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}
	return text.Text, result.IsError
}

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8080/")

	if client.baseURL != "http://localhost:8080" {
		t.Errorf("Expected trailing slash trimmed, got %s", client.baseURL)
	}
	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}
	if client.GetMCPServer() == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_Tools(t *testing.T) {
	client := NewClient("http://localhost:8080")
	response := client.GetMCPServer().HandleMessage(context.Background(),
		[]byte(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))

	data, err := json.Marshal(response)
	if err != nil {
		t.Fatalf("Failed to marshal response: %v", err)
	}
	for _, name := range []string{"game_rules", "list_matches", "match_status", "server_stats"} {
		if !strings.Contains(string(data), `"`+name+`"`) {
			t.Errorf("Expected tool %s to be registered, got %s", name, data)
		}
	}
	for _, name := range []string{"move", "shoot", "place"} {
		if strings.Contains(string(data), `"name":"`+name+`"`) {
			t.Errorf("Expected no %s tool on the observer", name)
		}
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	t.Run("unreachable", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1")
		if err := client.apiCall(context.Background(), "/api/stats", nil); err == nil {
			t.Error("Expected error for unreachable server")
		}
	})

	t.Run("error body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"match not found"}`))
		}))
		defer server.Close()

		err := NewClient(server.URL).apiCall(context.Background(), "/api/matches/x", nil)
		if err == nil || err.Error() != "match not found" {
			t.Errorf("Expected 'match not found', got %v", err)
		}
	})

	t.Run("plain status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Internal Server Error"))
		}))
		defer server.Close()

		err := NewClient(server.URL).apiCall(context.Background(), "/api/stats", nil)
		if err == nil || !strings.Contains(err.Error(), "API error") {
			t.Errorf("Expected 'API error', got %v", err)
		}
	})
}

func TestClient_handleGameRules(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/rules" {
			t.Errorf("Expected /api/rules, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(session.GameRules())
	}))
	defer server.Close()

	client := NewClient(server.URL)
	text, isErr := callTool(t, client.handleGameRules, "game_rules", nil)
	if isErr {
		t.Fatalf("Unexpected error result: %s", text)
	}
	for _, want := range []string{"Board: 13x13", "Moves per turn: 2", "Shoot radius: 3", "0: [0,0] [1,0] [2,0] [3,0]", "Directions: N, S, E, W"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in output, got: %s", want, text)
		}
	}
}

func TestClient_handleListMatches(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(matchList{
			Matches: []session.MatchInfo{{ID: "m1", White: "A", Black: "B", Turn: "black", TurnNumber: 3, MovesRemaining: 1}},
			Recent:  []session.MatchInfo{{ID: "m0", White: "C", Black: "D", Winner: "white", Reason: "direct hit"}},
			Count:   1,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	text, _ := callTool(t, client.handleListMatches, "list_matches", map[string]interface{}{
		"recent": true,
		"limit":  float64(5),
	})

	if gotQuery != "limit=5&recent=true" {
		t.Errorf("Expected query limit=5&recent=true, got %s", gotQuery)
	}
	for _, want := range []string{"1 matches in progress", "m1: A vs B, turn 3 (black, 1 left)", "m0: C vs D, white won (direct hit)"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in output, got: %s", want, text)
		}
	}
}

func TestClient_handleMatchStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/matches/abc" {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "match not found"})
			return
		}
		json.NewEncoder(w).Encode(session.MatchInfo{
			ID: "abc", White: "A", Black: "B", Status: "active",
			Turn: "white", TurnNumber: 0, MovesRemaining: 2,
			LastActionAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	t.Run("found", func(t *testing.T) {
		text, isErr := callTool(t, client.handleMatchStatus, "match_status", map[string]interface{}{"match_id": "abc"})
		if isErr {
			t.Fatalf("Unexpected error result: %s", text)
		}
		for _, want := range []string{"Match abc: A (white) vs B (black)", "Status: active", "Turn 0: white to play, 2 moves remaining", "2024-01-01T00:00:00Z"} {
			if !strings.Contains(text, want) {
				t.Errorf("Expected %q in output, got: %s", want, text)
			}
		}
	})

	t.Run("not found", func(t *testing.T) {
		text, isErr := callTool(t, client.handleMatchStatus, "match_status", map[string]interface{}{"match_id": "zzz"})
		if !isErr || !strings.Contains(text, "match not found") {
			t.Errorf("Expected not found error, got %v %s", isErr, text)
		}
	})

	t.Run("missing id", func(t *testing.T) {
		text, isErr := callTool(t, client.handleMatchStatus, "match_status", map[string]interface{}{})
		if !isErr || !strings.Contains(text, "match_id is required") {
			t.Errorf("Expected required error, got %v %s", isErr, text)
		}
	})
}

func TestClient_handleServerStats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"waiting":1,"active":2,"completed":3,"connections":5}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	text, _ := callTool(t, client.handleServerStats, "server_stats", nil)

	for _, want := range []string{"Waiting: 1", "Active matches: 2", "Completed matches: 3", "Connections: 5"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in output, got: %s", want, text)
		}
	}
}

func TestFormatMatchInfo_Finished(t *testing.T) {
	info := &session.MatchInfo{ID: "x", White: "A", Black: "B", Status: "ended", Winner: "black", Reason: "direct hit"}
	text := formatMatchInfo(info)

	if !strings.Contains(text, "Winner: black (direct hit)") {
		t.Errorf("Expected winner line, got: %s", text)
	}
	if strings.Contains(text, "to play") {
		t.Errorf("Expected no turn line for a finished match, got: %s", text)
	}
}

func TestFormatMatchList_Empty(t *testing.T) {
	if text := formatMatchList(&matchList{}); !strings.Contains(text, "No matches in progress") {
		t.Errorf("Expected empty message, got: %s", text)
	}
}
