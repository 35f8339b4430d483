package network

import "encoding/json"

// Message types - Client → Server
const (
	MsgTypeJoin  = "join"
	MsgTypeLeave = "leave"
	MsgTypeSolve = "solve"
	MsgTypePing  = "ping"
)

// Message types - Server → Client
const (
	MsgTypeWelcome     = "welcome"
	MsgTypeSolveResult = "solve_result"
	MsgTypeError       = "error"
	MsgTypePong        = "pong"
)

// ClientMessage represents any message from client to server
type ClientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ServerMessage represents any message from server to client
type ServerMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// --- Client Message Payloads ---

// SolvePayload asks the server to assign the given mods across the five
// equipped items at an upgrade tier. Items are manifest item IDs in slot
// order; mods are manifest mod hashes.
type SolvePayload struct {
	Items       []string `json:"items"`
	Mods        []int64  `json:"mods"`
	UpgradeTier int      `json:"upgrade_tier"`
}

// --- Server Message Payloads ---

// WelcomePayload is sent to client after successful connection
type WelcomePayload struct {
	PlayerID      string        `json:"player_id"`
	Username      string        `json:"username"`
	SessionID     string        `json:"session_id"`
	SessionStatus SessionStatus `json:"session_status"`
}

// SolveResultPayload carries a finished assignment back to the client. The
// assignment maps item ID to the mod hashes placed into it, slot-specific
// mods first. An empty assignment means no mod could be placed; it is not an
// error.
type SolveResultPayload struct {
	Assignment      map[string][]int64 `json:"assignment"`
	TotalEnergyUsed int                `json:"total_energy_used"`
	UpgradeTier     int                `json:"upgrade_tier"`
	ElapsedMs       int64              `json:"elapsed_ms"`
}

// SessionStatus represents the current session state
type SessionStatus struct {
	State        string `json:"state"`
	PlayerCount  int    `json:"player_count"`
	MaxPlayers   int    `json:"max_players"`
	ActiveSolves int    `json:"active_solves"`
	Uptime       int64  `json:"uptime"`
}

// ErrorPayload contains error information
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
