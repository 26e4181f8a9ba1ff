package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/bookhive-app/bookhive-golang/internal/models"
)

// systemInstruction pins the assistant to its in-app persona. Kept verbatim
// from the mobile client so both surfaces answer the same way.
const systemInstruction = `You are BookHive Buddy, your personal AI reading companion inside the BookHive app. Help users discover, rent, and buy books effortlessly, manage their bookshelf, and enjoy a smooth reading exchange experience.

Your mission is to make book lovers feel at home by guiding them through:

Finding the right books by genre or author

Renting or buying books in a few taps

Managing their profile, cart, and location info

Exploring their dashboard, adding books, or checking out smoothly

Keep your tone friendly, playful, and helpful—just like a book buddy who knows your reading taste! Use simple explanations, intuitive guidance, and quick steps to help users.

When explaining actions:

Be clear and concise

Use examples like: "Tap the 'Rent This Book' button to see your total deposit and rent," or "Click the cart icon to view added books."

Stay focused on:

Book discovery

Seamless renting & buying

Personalizing the user experience

Smooth navigation through BookHive features

Avoid non-book-related topics. If asked, kindly bring the focus back to reading, books, or app features.`

// Service holds the Gemini client used by the chat endpoint.
type Service struct {
	client *genai.Client
	model  string
}

// NewService initializes the Gemini client.
func NewService(ctx context.Context, apiKey, model string) (*Service, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Service{client: client, model: model}, nil
}

func (s *Service) Close() error {
	return s.client.Close()
}

// Reply sends one prompt with the session's role-tagged history and returns
// the model's text answer.
func (s *Service) Reply(ctx context.Context, prompt string, history []models.ChatMessage) (string, error) {
	model := s.client.GenerativeModel(s.model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}

	cs := model.StartChat()
	cs.History = toContents(history)

	res, err := cs.SendMessage(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("sending chat message: %w", err)
	}

	return textFrom(res)
}

func toContents(history []models.ChatMessage) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		role := msg.Role
		if role != "model" {
			role = "user"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Text)},
		})
	}
	return contents
}

func textFrom(res *genai.GenerateContentResponse) (string, error) {
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return "", errors.New("empty model response")
	}

	var b strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", errors.New("model response contained no text")
	}
	return b.String(), nil
}
