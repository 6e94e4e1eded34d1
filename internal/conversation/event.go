package conversation

// EventKind tags what an inbound operator message carries
type EventKind int

const (
	EventText EventKind = iota
	EventPhoto
	EventAudio
	EventCommand
	// EventOther is any message the conversation never accepts (video, sticker, location, ...)
	EventOther
)

func (k EventKind) String() string {
	switch k {
	case EventText:
		return "text"
	case EventPhoto:
		return "photo"
	case EventAudio:
		return "audio"
	case EventCommand:
		return "command"
	case EventOther:
		return "other"
	default:
		return "unknown"
	}
}

// Commands understood by the conversation
const (
	CommandStart  = "start"
	CommandCancel = "cancel"
	CommandDone   = "done"
	CommandSkip   = "skip"
)

// Event is one inbound message from the chat transport
type Event struct {
	Kind     EventKind
	SenderID int64
	// Text holds the message body, or the command name without its slash
	Text string
	// FileID is the opaque media reference for photo and audio events
	FileID string
}

// Reply is one outbound message for the chat transport
type Reply struct {
	Text string
	// Choices are keyboard rows offered as a one-time structured choice
	Choices        [][]string
	RemoveKeyboard bool
	// Progress replies replace the previous progress message instead of adding a new one
	Progress bool
}

func textReply(text string) Reply {
	return Reply{Text: text}
}
