package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile      string
	OutputDir    string
	WordFile     string
	WarmAudio    bool
	NoAudio      bool
	Phonetics    bool
	GenerateAnki bool
	AnkiCSV      bool
	DeckName     string

	// OpenAI flags
	OpenAIModel string

	// Gemini flags
	GeminiModel string
	GeminiVoice string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		DeckName:    "Spanish Vocabulary",
		OpenAIModel: "gpt-4o",
		GeminiModel: "gemini-2.5-flash-preview-tts",
		GeminiVoice: "Kore",
	}
}
