package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/misssam/tutor-backend/internal/analysis/language"
)

// ErrCompletionFailed wraps every failure of the hosted model call: auth,
// quota, network, or an empty reply. Callers surface a generic notice and
// never forward the underlying error text to the student.
var ErrCompletionFailed = errors.New("completion service failure")

// Truncation notices per language family, prepended to capped replies.
var shortenedNotice = map[language.Label]string{
	language.Urdu:    "مختصر جواب:",
	language.Roman:   "Mukhtasar jawab:",
	language.English: "Shortened answer:",
}

// Completion wraps the hosted chat model behind a plain text-in/text-out
// call with a per-attempt timeout and a bounded retry.
type Completion struct {
	chatModel model.BaseChatModel
	timeout   time.Duration
	retries   int
	wordLimit int
}

// NewCompletion builds the completion client. retries is the number of
// extra attempts after a failure; 0 disables retrying.
func NewCompletion(chatModel model.BaseChatModel, timeout time.Duration, retries, wordLimit int) *Completion {
	return &Completion{
		chatModel: chatModel,
		timeout:   timeout,
		retries:   retries,
		wordLimit: wordLimit,
	}
}

// Complete sends the assembled prompt and returns the post-processed reply.
// Replies longer than the word limit are truncated and prefixed with a
// shortened-answer notice in the student's language family.
func (c *Completion) Complete(ctx context.Context, prompt string, lang language.Label) (string, error) {
	reply, err := c.generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return c.capReply(reply, lang), nil
}

func (c *Completion) generate(ctx context.Context, prompt string) (string, error) {
	messages := []*schema.Message{schema.UserMessage(prompt)}

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("%w: %v", ErrCompletionFailed, err)
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		response, err := c.chatModel.Generate(attemptCtx, messages)
		cancel()

		if err != nil {
			lastErr = err
			log.Printf("[ai] completion attempt %d failed: %v", attempt+1, err)
			continue
		}
		if response == nil || strings.TrimSpace(response.Content) == "" {
			lastErr = errors.New("empty model response")
			log.Printf("[ai] completion attempt %d returned empty response", attempt+1)
			continue
		}
		return response.Content, nil
	}

	return "", fmt.Errorf("%w: %v", ErrCompletionFailed, lastErr)
}

// capReply enforces the hard word-count cap on raw model output.
func (c *Completion) capReply(reply string, lang language.Label) string {
	words := strings.Fields(reply)
	if len(words) <= c.wordLimit {
		return reply
	}

	notice, ok := shortenedNotice[lang]
	if !ok {
		notice = shortenedNotice[language.English]
	}
	return notice + "\n" + strings.Join(words[:c.wordLimit], " ")
}
