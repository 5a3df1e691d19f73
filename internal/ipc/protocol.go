package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types.
type CommandType string

const (
	CommandApply            CommandType = "APPLY"
	CommandReload           CommandType = "RELOAD"
	CommandGetStatus        CommandType = "GET_STATUS"
	CommandGetTopology      CommandType = "GET_TOPOLOGY"
	CommandListArrangements CommandType = "LIST_ARRANGEMENTS"
)

// Request represents an IPC request from client to server.
type Request struct {
	Command CommandType `json:"command"`
}

// Response represents an IPC response from server to client.
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// ApplyData is the result of an APPLY command: one placement pass.
type ApplyData struct {
	Arrangement string `json:"arrangement"`
	Topology    []int  `json:"topology"`
	Total       int    `json:"total"`
	Changed     int    `json:"changed"`
	Skipped     int    `json:"skipped"`
	Errors      int    `json:"errors"`
	Aborted     bool   `json:"aborted"`
}

// StatusData is returned by GET_STATUS.
type StatusData struct {
	DaemonRunning bool       `json:"daemon_running"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	Topology      []int      `json:"topology"`
	Arrangement   string     `json:"arrangement"`
	LastPass      *ApplyData `json:"last_pass,omitempty"`
}

// TopologyData is returned by GET_TOPOLOGY.
type TopologyData struct {
	ScreenSpaces []int        `json:"screen_spaces"`
	Screens      []ScreenInfo `json:"screens"`
}

// ScreenInfo describes one screen for diagnostics.
type ScreenInfo struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Spaces int    `json:"spaces"`
}

// ArrangementInfo describes one named arrangement.
type ArrangementInfo struct {
	Name         string `json:"name"`
	ScreenSpaces []int  `json:"screen_spaces"`
	Bindings     int    `json:"bindings"`
	HasDefault   bool   `json:"has_default"`
	Active       bool   `json:"active"`
}

// ArrangementsData is returned by LIST_ARRANGEMENTS.
type ArrangementsData struct {
	Arrangements []ArrangementInfo `json:"arrangements"`
}

// ParseRequest parses a JSON request from raw bytes.
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if req.Command == "" {
		return nil, fmt.Errorf("missing command")
	}
	return &req, nil
}

// Marshal serializes a response to JSON.
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

// OKResponse builds a success response with the given payload.
func OKResponse(data interface{}) (*Response, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response data: %w", err)
	}
	return &Response{Status: "OK", Data: raw}, nil
}

// ErrorResponse builds an error response.
func ErrorResponse(msg string) *Response {
	return &Response{Status: "ERROR", Error: msg}
}
