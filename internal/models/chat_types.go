package models

// ChatMessage is one role-tagged entry in a chat session.
// Role is either "user" or "model", matching the Gemini chat contract.
type ChatMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ChatSession is one conversation with the assistant. Sessions for a user are
// persisted together as a single JSON blob, mirroring how the mobile client
// kept them in local storage.
type ChatSession struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Messages []ChatMessage `json:"messages"`
	Archived bool          `json:"archived"`
}
