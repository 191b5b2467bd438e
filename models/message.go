package models

import "time"

// MessageAuthor identifies who wrote a transcript entry.
type MessageAuthor string

const (
	AuthorUser   MessageAuthor = "USER"
	AuthorSystem MessageAuthor = "SYSTEM"
)

// MessageKind tags system-authored messages.
type MessageKind string

const (
	KindPrompt          MessageKind = "PROMPT"
	KindConfirmation    MessageKind = "CONFIRMATION"
	KindError           MessageKind = "ERROR"
	KindRenderDirective MessageKind = "RENDER_DIRECTIVE"
)

// DirectiveKind names the structured payloads the presentation layer knows
// how to draw. The engine never formats presentation markup itself.
type DirectiveKind string

const (
	DirectiveItinerary  DirectiveKind = "itinerary"
	DirectiveDealList   DirectiveKind = "deal_list"
	DirectiveDealDetail DirectiveKind = "deal_detail"
	DirectiveAuthPopup  DirectiveKind = "auth_popup"
	DirectivePackages   DirectiveKind = "package_list"
	DirectiveOrder      DirectiveKind = "payment_order"
	DirectiveReceipt    DirectiveKind = "receipt"
	DirectiveGroupLink  DirectiveKind = "group_link"
)

// RenderDirective carries structured data for the presentation layer.
type RenderDirective struct {
	Kind DirectiveKind `json:"kind"`
	Data interface{}   `json:"data"`
}

// ChatMessage is one entry of the ordered, append-only transcript.
type ChatMessage struct {
	Author    MessageAuthor    `json:"author"`
	Kind      MessageKind      `json:"kind,omitempty"`
	Text      string           `json:"text,omitempty"`
	Directive *RenderDirective `json:"directive,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}
