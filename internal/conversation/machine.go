package conversation

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/Rrens/birthday-builder/internal/domain"
	"github.com/google/uuid"
)

// Step is the position of a session in the conversation
type Step int

const (
	StepAwaitingCategory Step = iota
	StepAwaitingGender
	StepAwaitingName
	StepAwaitingDate
	StepAwaitingPhotos
	StepAwaitingMusic
	StepAwaitingCustomText
	StepComplete
	StepCancelled
)

func (s Step) String() string {
	switch s {
	case StepAwaitingCategory:
		return "awaiting_category"
	case StepAwaitingGender:
		return "awaiting_gender"
	case StepAwaitingName:
		return "awaiting_name"
	case StepAwaitingDate:
		return "awaiting_date"
	case StepAwaitingPhotos:
		return "awaiting_photos"
	case StepAwaitingMusic:
		return "awaiting_music"
	case StepAwaitingCustomText:
		return "awaiting_custom_text"
	case StepComplete:
		return "complete"
	case StepCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further input is accepted
func (s Step) Terminal() bool {
	return s == StepComplete || s == StepCancelled
}

// Session is one in-progress conversation
type Session struct {
	ID   uuid.UUID
	Step Step
	Data domain.BirthdaySession
}

// NewSession starts a session for the operator at the category step
func NewSession(operatorID int64) Session {
	return Session{
		ID:   uuid.New(),
		Step: StepAwaitingCategory,
		Data: domain.BirthdaySession{OperatorID: operatorID},
	}
}

var categoryLabels = map[domain.Category]string{
	domain.CategoryMaleFriend:       "Male Friend 🎉",
	domain.CategoryFemaleFriend:     "Female Friend 💖",
	domain.CategoryUniversityJunior: "University Junior 🎓",
	domain.CategoryStudent:          "Student 🧑‍🎓",
}

var categoryKeyboard = [][]string{
	{categoryLabels[domain.CategoryMaleFriend], categoryLabels[domain.CategoryFemaleFriend]},
	{categoryLabels[domain.CategoryUniversityJunior], categoryLabels[domain.CategoryStudent]},
}

var genderKeyboard = [][]string{{"Male ♂️", "Female ♀️"}}

const (
	msgChooseCategory = "👋 Hello Admin! Let's build a birthday site.\n\nChoose a category:"
	msgBadCategory    = "⚠️ Please select an option from the menu."
	msgChooseGender   = "Recipient Gender?"
	msgBadGender      = "Please select Male or Female using the buttons."
	msgAskName        = "Got it. What is the Recipient's Name?"
	msgBadName        = "Please type the recipient's name."
	msgAskDate        = "Great! Enter Birth Date (DD/MM/YYYY), or DD/MM if you don't know the year."
	msgBadDate        = "❌ Invalid format. Use DD/MM/YYYY (e.g. 12/05/2000)"
	msgAskPhotos      = "📅 Date saved.\n\n📸 Send 10 photos.\n(Type /done if you have fewer, but 10 is best)"
	msgBadPhoto       = "Send a photo, or /done when you have finished."
	msgNoPhotos       = "Send at least one photo!"
	msgAskMusicFull   = "✅ 10 Photos saved.\n\n🎵 Now send an Audio/Song file."
	msgAskMusic       = "✅ Photos saved.\n\n🎵 Now send an Audio/Song file."
	msgBadMusic       = "Please send a valid audio file."
	msgAskCustomText  = "📝 Almost done!\n\nEnter the Custom Text for the final slide:\n(e.g., 'Happy Birthday Bestie!', 'Love you forever', etc.)\nSend /skip to use the default title."
	msgBadCustomText  = "Please type the final slide text, or /skip."
	msgCancelled      = "Action cancelled."
)

// StartReplies is the prompt sent when a session begins
func StartReplies() []Reply {
	return []Reply{{Text: msgChooseCategory, Choices: categoryKeyboard}}
}

// Advance applies one event to a session and returns the next session and the replies to send.
// A non-nil error is a rejected input; the returned session is then unchanged and the replies re-prompt.
func Advance(s Session, ev Event, now time.Time) (Session, []Reply, error) {
	if s.Step.Terminal() {
		return s, nil, fmt.Errorf("%w: session already %s", domain.ErrInvalidStepInput, s.Step)
	}

	if ev.Kind == EventCommand && ev.Text == CommandCancel {
		s.Step = StepCancelled
		return s, []Reply{{Text: msgCancelled, RemoveKeyboard: true}}, nil
	}

	switch s.Step {
	case StepAwaitingCategory:
		return advanceCategory(s, ev)
	case StepAwaitingGender:
		return advanceGender(s, ev)
	case StepAwaitingName:
		return advanceName(s, ev)
	case StepAwaitingDate:
		return advanceDate(s, ev, now)
	case StepAwaitingPhotos:
		return advancePhotos(s, ev)
	case StepAwaitingMusic:
		return advanceMusic(s, ev)
	case StepAwaitingCustomText:
		return advanceCustomText(s, ev)
	default:
		return s, nil, fmt.Errorf("%w: unknown step %d", domain.ErrInvalidStepInput, s.Step)
	}
}

func reject(s Session, ev Event, prompt Reply) (Session, []Reply, error) {
	return s, []Reply{prompt}, fmt.Errorf("%w: %s input at %s", domain.ErrInvalidStepInput, ev.Kind, s.Step)
}

func advanceCategory(s Session, ev Event) (Session, []Reply, error) {
	if ev.Kind != EventText {
		return reject(s, ev, Reply{Text: msgBadCategory, Choices: categoryKeyboard})
	}
	category, ok := ParseCategory(ev.Text)
	if !ok {
		return reject(s, ev, Reply{Text: msgBadCategory, Choices: categoryKeyboard})
	}
	s.Data.Category = category
	s.Step = StepAwaitingGender
	return s, []Reply{{Text: msgChooseGender, Choices: genderKeyboard}}, nil
}

func advanceGender(s Session, ev Event) (Session, []Reply, error) {
	if ev.Kind != EventText {
		return reject(s, ev, Reply{Text: msgBadGender, Choices: genderKeyboard})
	}
	gender, ok := ParseGender(ev.Text)
	if !ok {
		return reject(s, ev, Reply{Text: msgBadGender, Choices: genderKeyboard})
	}
	s.Data.Gender = gender
	s.Step = StepAwaitingName
	return s, []Reply{{Text: msgAskName, RemoveKeyboard: true}}, nil
}

func advanceName(s Session, ev Event) (Session, []Reply, error) {
	name := strings.TrimSpace(ev.Text)
	if ev.Kind != EventText || name == "" {
		return reject(s, ev, textReply(msgBadName))
	}
	s.Data.Name = name
	s.Step = StepAwaitingDate
	return s, []Reply{textReply(msgAskDate)}, nil
}

func advanceDate(s Session, ev Event, now time.Time) (Session, []Reply, error) {
	if ev.Kind != EventText {
		return reject(s, ev, textReply(msgBadDate))
	}
	dobText, ageText, err := ParseBirthDate(ev.Text, now)
	if err != nil {
		return s, []Reply{textReply(msgBadDate)}, err
	}
	s.Data.DOBText = dobText
	s.Data.AgeText = ageText
	s.Data.Photos = make([]string, 0, domain.PhotoQuota)
	s.Step = StepAwaitingPhotos
	return s, []Reply{textReply(msgAskPhotos)}, nil
}

func advancePhotos(s Session, ev Event) (Session, []Reply, error) {
	switch {
	case ev.Kind == EventPhoto && ev.FileID != "":
		s.Data.Photos = append(s.Data.Photos, ev.FileID)
		if len(s.Data.Photos) >= domain.PhotoQuota {
			s.Step = StepAwaitingMusic
			return s, []Reply{textReply(msgAskMusicFull)}, nil
		}
		progress := fmt.Sprintf("📸 %d/%d photos received", len(s.Data.Photos), domain.PhotoQuota)
		return s, []Reply{{Text: progress, Progress: true}}, nil

	case ev.Kind == EventCommand && ev.Text == CommandDone:
		if len(s.Data.Photos) == 0 {
			return s, []Reply{textReply(msgNoPhotos)}, domain.ErrEmptyPhotoSet
		}
		s.Step = StepAwaitingMusic
		return s, []Reply{textReply(msgAskMusic)}, nil
	}
	return reject(s, ev, textReply(msgBadPhoto))
}

func advanceMusic(s Session, ev Event) (Session, []Reply, error) {
	if ev.Kind != EventAudio || ev.FileID == "" {
		return reject(s, ev, textReply(msgBadMusic))
	}
	s.Data.AudioID = ev.FileID
	s.Step = StepAwaitingCustomText
	return s, []Reply{textReply(msgAskCustomText)}, nil
}

func advanceCustomText(s Session, ev Event) (Session, []Reply, error) {
	switch {
	case ev.Kind == EventText:
		s.Data.CustomText = strings.TrimSpace(ev.Text)
	case ev.Kind == EventCommand && ev.Text == CommandSkip:
		s.Data.CustomText = ""
	default:
		return reject(s, ev, textReply(msgBadCustomText))
	}
	s.Step = StepComplete
	return s, nil, nil
}

// ParseCategory matches a menu label or category key, ignoring case, emoji and separators
func ParseCategory(text string) (domain.Category, bool) {
	want := letters(text)
	for _, c := range domain.Categories {
		if want == letters(string(c)) || want == letters(categoryLabels[c]) {
			return c, true
		}
	}
	return "", false
}

// ParseGender matches "male" or "female", ignoring case and emoji
func ParseGender(text string) (domain.Gender, bool) {
	switch letters(text) {
	case "male":
		return domain.GenderMale, true
	case "female":
		return domain.GenderFemale, true
	}
	return "", false
}

// letters keeps only lower-cased letters so "Male Friend 🎉" and "male_friend" compare equal
func letters(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
