package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/objectifs/objectifs/internal/ai"
	"github.com/objectifs/objectifs/internal/apperr"
	"github.com/objectifs/objectifs/internal/model"
	"github.com/objectifs/objectifs/internal/repository"
)

// Completer produces an assistant reply. It never fails; ai.Chain falls back
// to canned advice.
type Completer interface {
	Complete(ctx context.Context, messages []ai.Message) string
}

const (
	assistantPrompt = "You are an intelligent assistant who helps users reach their objectives."
	coachPrompt     = "You are an expert coach in personal development."
)

var categoryGuidance = map[model.Category]string{
	model.CategorySpiritual:    "Give Islamic spiritual advice, relevant Quran verses and hadiths. Encourage religious practice and spiritual connection.",
	model.CategoryProfessional: "Give professional advice, career development strategies and resources to improve professional skills.",
	model.CategoryPersonal:     "Give personal development advice, habits to adopt and strategies to reach personal goals.",
	model.CategoryFinance:      "Give financial advice, saving and investment strategies, and tips to manage a budget.",
}

type ConversationService struct {
	repo       repository.ConversationRepository
	objectives *ObjectiveService
	completer  Completer
	now        func() time.Time
}

func NewConversationService(
	repo repository.ConversationRepository,
	objectives *ObjectiveService,
	completer Completer,
	now func() time.Time,
) *ConversationService {
	return &ConversationService{
		repo:       repo,
		objectives: objectives,
		completer:  completer,
		now:        clockOrNow(now),
	}
}

// Conversations lists the user's conversations, most recently active first.
func (s *ConversationService) Conversations(userID string) ([]*model.Conversation, error) {
	conversations, err := s.repo.Conversations(userID)
	if err != nil {
		return nil, apperr.Database(fmt.Errorf("failed to list conversations: %w", err))
	}
	for _, c := range conversations {
		s.attachObjective(c)
	}
	return conversations, nil
}

func (s *ConversationService) ByID(userID, id string) (*model.Conversation, error) {
	c, err := s.repo.ByID(id)
	if err != nil {
		return nil, storeErr(err, repository.ErrConversationNotFound, "conversation not found")
	}
	if c.UserID != userID {
		return nil, apperr.Unauthorized("not authorized to access this conversation")
	}
	s.attachObjective(c)
	return c, nil
}

// Create opens a conversation, optionally about one of the user's objectives.
func (s *ConversationService) Create(userID string, objectiveID *string) (*model.Conversation, error) {
	objectiveID = nonEmpty(objectiveID)

	var objective *model.Objective
	if objectiveID != nil {
		o, err := s.objectives.ByID(userID, *objectiveID)
		if err != nil {
			return nil, err
		}
		objective = o
	}

	now := s.now()
	c := &model.Conversation{
		ID:          uuid.New().String(),
		UserID:      userID,
		ObjectiveID: objectiveID,
		CreatedAt:   now,
		UpdatedAt:   now,
		Messages:    []*model.Message{},
	}
	if objective != nil {
		c.Objective = objectiveRef(objective)
	}

	err := s.repo.Create(c)
	if err != nil {
		return nil, apperr.Database(fmt.Errorf("failed to create conversation: %w", err))
	}
	return c, nil
}

// AddMessage appends the user's message and the assistant's reply. The reply
// is always present, falling back to canned advice.
func (s *ConversationService) AddMessage(ctx context.Context, userID, id, content string) (*model.Conversation, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Validation("please provide a message")
	}

	c, err := s.ByID(userID, id)
	if err != nil {
		return nil, err
	}

	var objective *model.Objective
	if c.ObjectiveID != nil {
		objective, _ = s.objectives.ByID(userID, *c.ObjectiveID)
	}

	prompt := []ai.Message{{Role: ai.RoleSystem, Content: systemPrompt(objective)}}
	for _, m := range c.Messages {
		prompt = append(prompt, ai.Message{Role: m.Role, Content: m.Content})
	}
	prompt = append(prompt, ai.Message{Role: ai.RoleUser, Content: content})

	reply := s.completer.Complete(ctx, prompt)

	now := s.now()
	turn := []*model.Message{
		{Role: model.RoleUser, Content: content, CreatedAt: now},
		{Role: model.RoleAssistant, Content: reply, CreatedAt: now},
	}
	err = s.repo.AppendMessages(c.ID, turn...)
	if err != nil {
		return nil, storeErr(err, repository.ErrConversationNotFound, "conversation not found")
	}

	c.Messages = append(c.Messages, turn...)
	c.UpdatedAt = now
	return c, nil
}

func (s *ConversationService) Delete(userID, id string) error {
	c, err := s.ByID(userID, id)
	if err != nil {
		return err
	}

	err = s.repo.Delete(c.ID)
	if err != nil {
		return storeErr(err, repository.ErrConversationNotFound, "conversation not found")
	}
	return nil
}

// Suggestions asks the assistant for three concrete ways to reach an objective.
func (s *ConversationService) Suggestions(ctx context.Context, userID, objectiveID string) (string, error) {
	o, err := s.objectives.ByID(userID, objectiveID)
	if err != nil {
		return "", err
	}

	return s.completer.Complete(ctx, []ai.Message{
		{Role: ai.RoleSystem, Content: coachPrompt},
		{Role: ai.RoleUser, Content: suggestionPrompt(o)},
	}), nil
}

// News returns three reading suggestions built from the objective itself.
func (s *ConversationService) News(userID, objectiveID string) ([]model.NewsItem, error) {
	o, err := s.objectives.ByID(userID, objectiveID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	return []model.NewsItem{
		{
			ID:          "1",
			Title:       fmt.Sprintf("New trends in %s", o.Category),
			Description: fmt.Sprintf("Discover the latest trends in %s that could help you reach your objective %q.", o.Category, o.Name),
			URL:         "https://example.com/article1",
			Date:        now,
			Source:      "Example News",
		},
		{
			ID:          "2",
			Title:       fmt.Sprintf("How to improve your %s", o.Name),
			Description: fmt.Sprintf("Experts share their advice to improve your %s and reach your goals faster.", o.Name),
			URL:         "https://example.com/article2",
			Date:        now.Add(-24 * time.Hour),
			Source:      "Expert Advice",
		},
		{
			ID:          "3",
			Title:       fmt.Sprintf("Recent study on %s", o.Category),
			Description: fmt.Sprintf("A new study reveals interesting findings on %s that could shape your approach to %q.", o.Category, o.Name),
			URL:         "https://example.com/article3",
			Date:        now.Add(-48 * time.Hour),
			Source:      "Research Journal",
		},
	}, nil
}

// attachObjective fills the objective summary when the objective still exists.
func (s *ConversationService) attachObjective(c *model.Conversation) {
	if c.ObjectiveID == nil {
		return
	}
	o, err := s.objectives.ByID(c.UserID, *c.ObjectiveID)
	if err == nil {
		c.Objective = objectiveRef(o)
	}
}

func objectiveRef(o *model.Objective) *model.ObjectiveRef {
	return &model.ObjectiveRef{
		ID:          o.ID,
		Name:        o.Name,
		Category:    o.Category,
		Description: o.Description,
	}
}

func systemPrompt(o *model.Objective) string {
	if o == nil {
		return assistantPrompt
	}

	var b strings.Builder
	b.WriteString(assistantPrompt)
	fmt.Fprintf(&b, " The user is working on a %s objective: %q.", o.Category, o.Name)
	if o.Description != nil && *o.Description != "" {
		fmt.Fprintf(&b, " Description: %s.", *o.Description)
	}
	if guidance, ok := categoryGuidance[o.Category]; ok {
		b.WriteString(" ")
		b.WriteString(guidance)
	}
	return b.String()
}

func suggestionPrompt(o *model.Objective) string {
	var b strings.Builder
	b.WriteString("Generate 3 concrete suggestions to help reach the following objective:\n")
	fmt.Fprintf(&b, "Objective name: %s\n", o.Name)
	fmt.Fprintf(&b, "Category: %s\n", o.Category)
	fmt.Fprintf(&b, "Tracking type: %s\n", o.TrackingType)
	fmt.Fprintf(&b, "Frequency: %s\n", o.Frequency)
	if o.Description != nil && *o.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", *o.Description)
	}
	if o.Target != nil {
		fmt.Fprintf(&b, "Target: %s\n", strconv.FormatFloat(*o.Target, 'f', -1, 64))
	}
	b.WriteString(`
For each suggestion, include:
1. A short title
2. A detailed description
3. Concrete steps to follow
4. Recommended resources (books, websites, apps, etc.)

Format the suggestions clearly and make sure they fit the objective's category.`)
	return b.String()
}
