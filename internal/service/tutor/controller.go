// Package tutor orchestrates one user-input event: greeting injection,
// guard checks, prompt assembly, the completion call, and the resulting
// conversation mutations.
package tutor

import (
	"context"
	"log"
	"strings"

	"github.com/misssam/tutor-backend/internal/analysis/guard"
	"github.com/misssam/tutor-backend/internal/analysis/language"
	"github.com/misssam/tutor-backend/internal/config"
	"github.com/misssam/tutor-backend/internal/service/ai"
	"github.com/misssam/tutor-backend/internal/service/conversation"
)

// OutcomeKind classifies how a user-input event was resolved.
type OutcomeKind string

const (
	// OutcomeNone means the input was empty after trimming; nothing changed.
	OutcomeNone OutcomeKind = "none"
	// OutcomeGreeting means the one-shot greeting consumed this input.
	OutcomeGreeting OutcomeKind = "greeting"
	// OutcomeRefused means the Content Guard rejected the input.
	OutcomeRefused OutcomeKind = "refused"
	// OutcomeRedirected means the Scope Guard rejected the input.
	OutcomeRedirected OutcomeKind = "redirected"
	// OutcomeAnswered means the model produced a reply.
	OutcomeAnswered OutcomeKind = "answered"
	// OutcomeFailed means the completion call failed; no reply was stored.
	OutcomeFailed OutcomeKind = "failed"
)

// Outcome is what the presentation layer shows for one input event.
type Outcome struct {
	Kind  OutcomeKind `json:"kind"`
	Reply string      `json:"reply,omitempty"`
}

// Fixed student-facing notices. Guard notices keep the original Urdu-script
// wording of the tutor persona.
const (
	refusalNotice  = "معذرت! یہ سوال مناسب نہیں۔ براہِ کرم تعلیمی سوال پوچھیں۔"
	redirectNotice = "یہ سوال میٹرک سطح سے اوپر ہے۔ براہِ کرم سینئر ٹیچر سے مدد لیں۔"
	tryAgainNotice = "Maazrat, abhi jawab nahin mil saka. Thori dair baad dobara koshish karein."
)

// Controller runs the per-event state machine for a session. Events within
// one session are processed strictly one at a time.
type Controller struct {
	conversations     *conversation.Service
	completion        *ai.Completion
	forwardFirstInput bool
}

// New wires the controller. completion may be nil when no model credentials
// were configured; answer attempts then resolve to OutcomeFailed.
func New(conversations *conversation.Service, completion *ai.Completion, cfg config.TutorConfig) *Controller {
	return &Controller{
		conversations:     conversations,
		completion:        completion,
		forwardFirstInput: cfg.ForwardFirstInput,
	}
}

// HandleInput processes one user input for the session. Whitespace-only
// input is a no-op. The returned error covers unknown sessions and internal
// store failures only; guard rejections and completion failures are regular
// outcomes.
func (c *Controller) HandleInput(ctx context.Context, sessionID, input string) (Outcome, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Outcome{Kind: OutcomeNone}, nil
	}

	greeted, err := c.conversations.Greeted(ctx, sessionID)
	if err != nil {
		return Outcome{}, err
	}

	if err := c.conversations.AppendUser(ctx, sessionID, input); err != nil {
		return Outcome{}, err
	}

	if !greeted {
		return c.greet(ctx, sessionID, input)
	}

	return c.answer(ctx, sessionID, input, "")
}

// greet delivers the one-shot greeting. The first input is consumed to
// trigger it and, unless forwarding is enabled, never reaches the guards or
// the model.
func (c *Controller) greet(ctx context.Context, sessionID, input string) (Outcome, error) {
	if err := c.conversations.MarkGreeted(ctx, sessionID); err != nil {
		return Outcome{}, err
	}

	if !c.forwardFirstInput {
		if err := c.conversations.AppendAssistant(ctx, sessionID, ai.GreetingMessage); err != nil {
			return Outcome{}, err
		}
		return Outcome{Kind: OutcomeGreeting, Reply: ai.GreetingMessage}, nil
	}

	// Forwarding mode answers the first question in the same assistant turn
	// as the greeting, so the turn pairing stays intact.
	outcome, err := c.answer(ctx, sessionID, input, ai.GreetingMessage+"\n\n")
	if err != nil {
		return Outcome{}, err
	}
	if outcome.Kind == OutcomeRedirected || outcome.Kind == OutcomeFailed {
		// The user turn stays; pair it with the plain greeting.
		if err := c.conversations.AppendAssistant(ctx, sessionID, ai.GreetingMessage); err != nil {
			return Outcome{}, err
		}
	}
	return outcome, nil
}

// answer runs the guards and, when they pass, the completion pipeline.
// replyPrefix is prepended to a successful reply before it is stored.
func (c *Controller) answer(ctx context.Context, sessionID, input, replyPrefix string) (Outcome, error) {
	if !guard.IsClean(input) {
		// Rejected input never participates in future prompt assembly.
		if err := c.conversations.PopLastUser(ctx, sessionID); err != nil {
			return Outcome{}, err
		}
		return Outcome{Kind: OutcomeRefused, Reply: refusalNotice}, nil
	}

	if guard.IsBeyondMatric(input) {
		// Out-of-scope input stays in the history, unpaired.
		return Outcome{Kind: OutcomeRedirected, Reply: redirectNotice}, nil
	}

	if c.completion == nil {
		log.Printf("[tutor] no completion model configured for session=%s", sessionID)
		return Outcome{Kind: OutcomeFailed, Reply: tryAgainNotice}, nil
	}

	users, assistants, err := c.conversations.Turns(ctx, sessionID)
	if err != nil {
		return Outcome{}, err
	}

	prompt := ai.AssemblePrompt(users, assistants)
	reply, err := c.completion.Complete(ctx, prompt, language.Detect(input))
	if err != nil {
		// The user turn stays unpaired; the display only renders full pairs.
		log.Printf("[tutor] completion failed for session=%s: %v", sessionID, err)
		return Outcome{Kind: OutcomeFailed, Reply: tryAgainNotice}, nil
	}

	reply = replyPrefix + reply
	if err := c.conversations.AppendAssistant(ctx, sessionID, reply); err != nil {
		return Outcome{}, err
	}
	return Outcome{Kind: OutcomeAnswered, Reply: reply}, nil
}
