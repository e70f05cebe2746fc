package config

// Domain limits
const (
	// FreeMonthlyMessageLimit is the monthly cap on user-authored chat
	// messages for free-tier accounts. Premium and admin are unbounded.
	FreeMonthlyMessageLimit = 50

	// JournalContextEntries is how many recent journal entries feed the
	// emotional context of a completion call.
	JournalContextEntries = 5

	// AnalysisEntries is how many recent entries the journal analysis reads.
	AnalysisEntries = 10

	// MaxContextTokens bounds the rendered journal context block.
	MaxContextTokens = 2000

	// TitleMaxLength caps generated chat titles, in characters.
	TitleMaxLength = 50

	MinEmotionRating = 1
	MaxEmotionRating = 10
)

// PlaceholderChatTitle is the title a chat carries until the title
// generator replaces it after the first user message.
const PlaceholderChatTitle = "New Chat"
