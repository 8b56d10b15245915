package quiz

import "fmt"

// Tone is the feedback colour hint.
type Tone string

const (
	ToneNeutral   Tone = "neutral"
	ToneCorrect   Tone = "correct"
	ToneIncorrect Tone = "incorrect"
	ToneSkipped   Tone = "skipped"
	ToneError     Tone = "error"
)

// Feedback texts.
const (
	FeedbackCorrect   = "✅ Correct!"
	FeedbackIncorrect = "❌ Incorrect. Correct: %s"
	FeedbackSkipped   = "⏭️ Skipped."
)

// View is everything the display shows for a session.
type View struct {
	Question  string   `json:"question"`
	Count     string   `json:"count"`
	Choices   []string `json:"choices"`
	Feedback  string   `json:"feedback"`
	Tone      Tone     `json:"tone"`
	Score     string   `json:"score"`
	Remaining string   `json:"remaining"`
	Disabled  bool     `json:"disabled"`
}

// Renderer reflects a View into the display. Must not block.
type Renderer interface {
	Render(View)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(View)

func (f RendererFunc) Render(v View) { f(v) }

// FailureView is shown in place of the quiz when the records could not be loaded.
func FailureView() View {
	return View{
		Question: MessageLoadFailed,
		Choices:  []string{},
		Tone:     ToneError,
		Disabled: true,
	}
}

func scoreText(score, total int) string {
	return fmt.Sprintf("Score: %d/%d", score, total)
}

func remainingText(n int) string {
	return fmt.Sprintf("Remaining: %d", n)
}

func countText(number, size int) string {
	return fmt.Sprintf("Question: %d / %d", number, size)
}
