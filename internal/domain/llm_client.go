package domain

import "context"

// Chat roles as sent over the wire to the model endpoint.
const (
	RoleUser  = "user"
	RoleModel = "model"
	RoleTool  = "tool"
)

// Names of the evidence tools exposed to the model.
const (
	ToolCheckDatabaseForURL = "check_database_for_url"
	ToolSearchGoogleNews    = "search_google_news"
	ToolFactCheckClaims     = "fact_check_claims"
)

// FunctionCall is a single tool invocation requested by the model.
type FunctionCall struct {
	Name string
	Args map[string]any
}

// FunctionResult feeds the outcome of a dispatched tool call back to the
// model. Response is the JSON-shaped payload the model sees.
type FunctionResult struct {
	Name     string
	Response map[string]any
}

// ChatMessage is one turn in the tool-calling conversation. Exactly one of
// Text, Calls, or Results is meaningful depending on Role.
type ChatMessage struct {
	Role    string
	Text    string
	Calls   []FunctionCall
	Results []FunctionResult
}

// ModelTurn is the model's next move: either one or more tool invocations to
// dispatch, or final text.
type ModelTurn struct {
	Text  string
	Calls []FunctionCall
}

// LLMClient sends a tool-enabled conversation to the generative model and
// returns its next turn. The client is stateless; callers own the history.
type LLMClient interface {
	Chat(ctx context.Context, system string, history []ChatMessage) (*ModelTurn, error)
	Version() string
}
